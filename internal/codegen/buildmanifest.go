package codegen

import "strings"

// generateBuildManifest emits a CMakeLists.txt that globs the emitted
// sources rather than naming them one by one, so the manifest still works
// after a later compile adds or removes classes (DESIGN.md's "Build
// manifest format" decision; spec.md §6 "e.g., a CMake script").
func (g *Generator) generateBuildManifest() string {
	var b strings.Builder
	b.WriteString("cmake_minimum_required(VERSION 3.10)\n")
	b.WriteString("project(" + g.executableName() + " C)\n\n")
	b.WriteString("set(CMAKE_C_STANDARD 99)\n")
	b.WriteString("set(CMAKE_C_STANDARD_REQUIRED ON)\n\n")
	b.WriteString("file(GLOB " + g.executableName() + "_SOURCES \"${CMAKE_CURRENT_SOURCE_DIR}/*.c\" \"${CMAKE_CURRENT_SOURCE_DIR}/*.h\")\n\n")
	b.WriteString("add_executable(" + g.executableName() + " ${" + g.executableName() + "_SOURCES})\n")
	return b.String()
}

// executableName picks the class declaring `main` as the target name, or
// falls back to a fixed name if no class declares one (neither the parser
// nor the analyzer rejects a program without `main`).
func (g *Generator) executableName() string {
	for _, name := range g.classOrder() {
		class := g.project.Class(name)
		for _, m := range class.Methods {
			if m.IsMain {
				return class.Name
			}
		}
	}
	return "program"
}
