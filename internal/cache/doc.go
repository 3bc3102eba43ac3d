// Package cache provides a small generic LRU cache.
//
// The kaleido CLI keeps decoded source images in it so that switching back
// and forth between inputs in the interactive session does not decode the
// same file twice.
//
//	images := cache.New[string, *image.ImageBuf](8)
//	img, err := images.GetOrLoad(path, func() (*image.ImageBuf, error) {
//		return image.LoadImage(path)
//	})
//
// # Thread Safety
//
// Cache is safe for concurrent use and must not be copied after creation.
package cache
