package utils

import "fmt"

func wrap(prefix string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", prefix, err)
}

// WrapGetError returns a wrapped get error
func WrapGetError(err error) error {
	return wrap("get error", err)
}

// WrapListError returns a wrapped list error
func WrapListError(err error) error {
	return wrap("list error", err)
}

// WrapCreateError returns a wrapped create error
func WrapCreateError(err error) error {
	return wrap("create error", err)
}

// WrapSetError returns a wrapped set error
func WrapSetError(err error) error {
	return wrap("set error", err)
}

// WrapUpdateError returns a wrapped update error
func WrapUpdateError(err error) error {
	return wrap("update error", err)
}

// WrapDeleteError returns a wrapped delete error
func WrapDeleteError(err error) error {
	return wrap("delete error", err)
}

// WrapExistsError returns a wrapped exists error
func WrapExistsError(err error) error {
	return wrap("exists error", err)
}

// WrapUploadError returns a wrapped upload error
func WrapUploadError(err error) error {
	return wrap("upload error", err)
}

// WrapDownloadError returns a wrapped download error
func WrapDownloadError(err error) error {
	return wrap("download error", err)
}

// WrapCacheError returns a wrapped cache error
func WrapCacheError(err error) error {
	return wrap("cache error", err)
}
