package httpx

import (
	"errors"
	"net/http"
	"testing"
)

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *AppError
		want string
	}{
		{
			name: "error without internal err",
			err:  NewAppError(http.StatusBadRequest, CodeParamMissing, "param missing", nil),
			want: "code=2001, message=param missing",
		},
		{
			name: "error with internal err",
			err:  NewAppError(http.StatusInternalServerError, CodeInternalError, "internal error", errors.New("db connection failed")),
			want: "code=5001, message=internal error, err=db connection failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("AppError.Error() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestErrNotFound(t *testing.T) {
	err := ErrNotFound("client not found")
	if err.HTTPStatus != http.StatusNotFound {
		t.Errorf("Expected HTTP status %d, got %d", http.StatusNotFound, err.HTTPStatus)
	}
	if err.Code != CodeNotFound {
		t.Errorf("Expected code %d, got %d", CodeNotFound, err.Code)
	}
}

func TestErrAlreadyExists(t *testing.T) {
	err := ErrAlreadyExists("")
	if err.HTTPStatus != http.StatusConflict {
		t.Errorf("Expected HTTP status %d, got %d", http.StatusConflict, err.HTTPStatus)
	}
	if err.Message != "resource already exists" {
		t.Errorf("Expected default message, got '%s'", err.Message)
	}
}

func TestErrStateConflict(t *testing.T) {
	err := ErrStateConflict("client is already blocked")
	if err.HTTPStatus != http.StatusConflict {
		t.Errorf("Expected HTTP status %d, got %d", http.StatusConflict, err.HTTPStatus)
	}
	if err.Code != CodeStateConflict {
		t.Errorf("Expected code %d, got %d", CodeStateConflict, err.Code)
	}
}

func TestErrExternalError(t *testing.T) {
	cause := errors.New("panel returned status 502")
	err := ErrExternalError("remote panel error", cause)
	if err.HTTPStatus != http.StatusBadGateway {
		t.Errorf("Expected HTTP status %d, got %d", http.StatusBadGateway, err.HTTPStatus)
	}
	if err.Code != CodeExternalError {
		t.Errorf("Expected code %d, got %d", CodeExternalError, err.Code)
	}
	if err.Err != cause {
		t.Error("Internal error must be preserved")
	}
}
