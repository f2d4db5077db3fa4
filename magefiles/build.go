//go:build mage

package main

import (
	"github.com/magefile/mage/mg"
)

type Build mg.Namespace

func buildShaders() error {
	if _, err := executeCmd("glslc", withArgs("shaders/default.vert", "-o", "shaders/default_vert.spv"), withStream()); err != nil {
		return err
	}
	if _, err := executeCmd("glslc", withArgs("shaders/default.frag", "-o", "shaders/default_frag.spv"), withStream()); err != nil {
		return err
	}
	return nil
}

// Compiles the GLSL sources in shaders/ to SPIR-V with glslc.
func (Build) Shaders() error {
	return buildShaders()
}

// Builds the application binary.
func (Build) App() error {
	mg.Deps(Build.Shaders)
	if _, err := executeCmd("go", withArgs("build", "-o", "custicle", "."), withStream()); err != nil {
		return err
	}
	return nil
}
