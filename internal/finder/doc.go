// Package finder locates OpenVINO shared libraries on disk.
//
// Candidate directories are probed in a fixed priority order:
//
//   - OPENVINO_BUILD_DIR with the source-build sub-paths.
//   - OPENVINO_INSTALL_DIR with the install sub-paths, then the root itself.
//   - INTEL_OPENVINO_DIR (exported by setupvars.sh), same as above.
//   - The loader search path (LD_LIBRARY_PATH, DYLD_LIBRARY_PATH or PATH).
//   - Package-manager system directories.
//   - Default install roots such as /opt/intel/openvino.
//
// File naming and directory layouts come from a PlatformConventions value,
// selected per OS at compile time by Native. Matching is by exact file name.
//
// Files:
//
//   - platform.go, native_*.go: per-OS conventions.
//   - finder.go: Finder, Candidates, Find.
//   - cache.go: positive per-name cache.
//   - plugins.go: plugins.xml discovery.
//   - errors.go: NotFoundError and sentinels.
package finder
