package controllers

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/dmatoso/checkpix-backend/api/responses"
	"github.com/dmatoso/checkpix-backend/pkg/config"
	pkgerrors "github.com/dmatoso/checkpix-backend/pkg/errors"
	"github.com/dmatoso/checkpix-backend/pkg/logger"
	"github.com/dmatoso/checkpix-backend/pkg/storage/local"
)

type uploadResponse struct {
	ImageURL string `json:"imageUrl"`
}

// Upload accepts a multipart file and stores it under the public uploads
// directory. The timestamp prefix keeps repeated uploads of the same file
// name from clobbering each other.
func Upload(store *local.Store, cfg config.StorageConfig, logg *logger.Logger) http.HandlerFunc {
	maxBytes := int64(cfg.MaxUploadMB) << 20
	if maxBytes <= 0 {
		maxBytes = 10 << 20
	}

	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxBytes)

		file, header, err := r.FormFile("file")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "file is required"))
			return
		}
		defer file.Close()

		data, err := io.ReadAll(file)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "read upload"))
			return
		}

		name := fmt.Sprintf("%d_%s", time.Now().UnixMilli(), local.SanitizeFileName(header.Filename))
		path, err := store.Save(cfg.UploadsDir, name, data)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "save upload"))
			return
		}

		responses.WriteSuccess(w, uploadResponse{ImageURL: path})
	}
}
