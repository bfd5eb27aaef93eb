//go:build !js

package main

import (
	"fmt"

	"github.com/go-gl/glfw/v3.3/glfw"
)

// makeContext creates a hidden window and makes its OpenGL 3.3 core context
// current on the calling thread.
func makeContext() (release func(), err error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("glfw: %w", err)
	}
	glfw.WindowHint(glfw.Visible, glfw.False)
	glfw.WindowHint(glfw.Resizable, glfw.False)
	glfw.WindowHint(glfw.ContextVersionMajor, 3)
	glfw.WindowHint(glfw.ContextVersionMinor, 3)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	win, err := glfw.CreateWindow(16, 16, "glprobe", nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("glfw: %w", err)
	}
	win.MakeContextCurrent()
	return func() {
		win.Destroy()
		glfw.Terminate()
	}, nil
}
