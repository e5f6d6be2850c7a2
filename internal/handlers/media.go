package handlers

import (
	"fmt"
	"mime/multipart"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/myproparti-blip/My-pro-backend/internal/storage"
	"github.com/myproparti-blip/My-pro-backend/pkg/apperrors"
)

// saveUpload streams one multipart file into storage under dir and
// returns the stored relative path.
func saveUpload(c *gin.Context, store storage.Storage, dir string, file *multipart.FileHeader) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", apperrors.NewBadRequestError("Unable to read uploaded file: " + err.Error())
	}
	defer src.Close()

	path := fmt.Sprintf("%s/%s%s", dir, uuid.NewString(), filepath.Ext(file.Filename))
	contentType := file.Header.Get("Content-Type")

	if err := store.Save(c.Request.Context(), path, src, contentType); err != nil {
		return "", apperrors.InternalError(err)
	}
	return path, nil
}

// saveUploads stores every file of a multipart field and returns the
// stored paths in order.
func saveUploads(c *gin.Context, store storage.Storage, dir string, files []*multipart.FileHeader) ([]string, error) {
	paths := make([]string, 0, len(files))
	for _, file := range files {
		path, err := saveUpload(c, store, dir, file)
		if err != nil {
			return nil, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// mediaURL turns a stored path into an absolute URL for the current
// request origin.
func mediaURL(store storage.Storage, requestBase, path string) string {
	return storage.ResolveURL(requestBase, storage.ResolveURL(store.BaseURL(), path))
}

func mediaURLs(store storage.Storage, requestBase string, paths []string) []string {
	if len(paths) == 0 {
		return paths
	}
	out := make([]string, len(paths))
	for i, p := range paths {
		out[i] = mediaURL(store, requestBase, p)
	}
	return out
}
