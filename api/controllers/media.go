package controllers

import (
	"net/http"

	"github.com/rmartell/inventra-backend/api/middleware"
	"github.com/rmartell/inventra-backend/api/responses"
	mediasvc "github.com/rmartell/inventra-backend/internal/media"
	pkgerrors "github.com/rmartell/inventra-backend/pkg/errors"
	"github.com/rmartell/inventra-backend/pkg/logger"
)

const uploadFormField = "image"

// AssetImageUpload accepts a multipart image and stores it, returning the
// public URL to attach to an asset.
func AssetImageUpload(svc mediasvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "media service unavailable"))
			return
		}

		actor, err := middleware.ActorFromContext(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		file, _, err := r.FormFile(uploadFormField)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "image file required"))
			return
		}
		defer file.Close()

		result, err := svc.UploadImage(r.Context(), actor.ID, file)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, result)
	}
}
