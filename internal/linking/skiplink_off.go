//go:build !ovlink_nolink

package linking

const skipLinkTag = false
