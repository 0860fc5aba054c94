package services

import (
	"errors"

	"mural_backend/internal/media"
	"mural_backend/pkg/apperrors"
)

// mediaValidationErr переводит отказ валидатора форматов в HTTP-ошибку: 400, 413 или 415
func mediaValidationErr(err error) error {
	var vErr *media.ValidationError
	if !errors.As(err, &vErr) {
		return apperrors.InternalError(err)
	}

	switch vErr.Kind {
	case media.KindSize:
		return apperrors.ErrFileTooLarge(vErr.MaxSize)
	case media.KindExtension, media.KindCategory:
		return apperrors.ErrInvalidFileType(vErr.Message)
	case media.KindFilename:
		return apperrors.ErrInvalidFileName(vErr.Message)
	default:
		panic("unknown media validation kind: " + string(vErr.Kind))
	}
}
