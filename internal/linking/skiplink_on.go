//go:build ovlink_nolink

package linking

// Built without a native library, e.g. for documentation builds.
const skipLinkTag = true
