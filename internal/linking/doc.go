// Package linking binds the OpenVINO C API at runtime without cgo.
//
// A Binder moves Unbound -> Loading -> Bound, or -> Failed. The first Bind
// resolves a path (fixed at build time, given explicitly, or found by a
// finder.Locator), loads the image and resolves every manifest symbol. Any
// missing symbol unloads the image and fails the whole bind. Concurrent
// callers wait for that single attempt and share its outcome.
//
// Symbol addresses never leave a *Library: callers go through Call or a
// Use callback, both of which hold the handle open. After Close (or
// Binder.Unbind) they return ErrUnbound.
//
// Build options:
//
//   - -ldflags "-X ovlink/internal/linking.buildLinkMode=build -X ...buildLibraryPath=..."
//     stamps a BuildTime path (see BuildDefaults).
//   - -tags ovlink_dynamic links openvino_c through cgo (link_cgo.go).
//   - -tags ovlink_nolink produces a handle-less build; every bind returns
//     ErrLinkSkipped when the caller honors BuildDefaults().SkipLink.
//
// Loaders: purego on darwin/linux/freebsd (loader_unix.go), x/sys/windows on
// Windows (loader_windows.go).
package linking
