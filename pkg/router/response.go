package router

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/bouwconnect/backend/pkg/errorx"
	"github.com/bouwconnect/backend/pkg/xcontext"
)

type errorResponse struct {
	Code  int64  `json:"code"`
	Error string `json:"error"`
}

func toErrorx(err error) errorx.Error {
	var errx errorx.Error
	if errors.As(err, &errx) {
		return errx
	}

	return errorx.Unknown
}

// WriteJSONError renders err as {"code", "error"} with the HTTP status of its
// code. Non errorx errors never leak their message.
func WriteJSONError(ctx context.Context, err error) {
	errx := toErrorx(err)
	resp := errorResponse{Code: int64(errx.Code), Error: errx.Message}
	if err := WriteJSON(xcontext.ResponseWriter(ctx), errx.Code.HTTPStatus(), resp); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot write the error response: %v", err)
	}
}

// WriteTextError renders err as a plain text body.
func WriteTextError(ctx context.Context, err error) {
	errx := toErrorx(err)
	w := xcontext.ResponseWriter(ctx)
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(errx.Code.HTTPStatus())
	if _, err := w.Write([]byte(errx.Message)); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot write the error response: %v", err)
	}
}

func WriteJSON(w http.ResponseWriter, status int, resp any) error {
	b, err := json.Marshal(resp)
	if err != nil {
		return err
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_, err = w.Write(b)
	return err
}
