//go:build !(ovlink_dynamic && cgo)

package linking

const cgoLinked = false
