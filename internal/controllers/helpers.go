package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/AbdellahHatouchi/property-management/internal/dtos"
	"github.com/AbdellahHatouchi/property-management/pkg/middleware"
	"github.com/AbdellahHatouchi/property-management/pkg/utils"
)

// decodeAndValidate reads the JSON body into dst and runs the request
// validator. On failure it writes the 400 and returns false.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid data!", nil, err)
		return false
	}
	if err := dtos.Validator().Struct(dst); err != nil {
		utils.RespondErrorWithCode(
			w, http.StatusBadRequest, utils.ErrCodeValidation, "Invalid data!", dtos.ValidationDetails(err), err,
		)
		return false
	}
	return true
}

func requireUserID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		utils.RespondErrorWithCode(w, http.StatusForbidden, utils.ErrCodeUnauthenticated, "Unauthenticated", nil)
		return uuid.Nil, false
	}
	return id, true
}

func pathUUID(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	raw := mux.Vars(r)[name]
	id, err := uuid.Parse(raw)
	if err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid "+name, nil, err)
		return uuid.Nil, false
	}
	return id, true
}

// scope resolves the caller and the {businessId} path variable.
func scope(w http.ResponseWriter, r *http.Request) (userID, businessID uuid.UUID, ok bool) {
	if userID, ok = requireUserID(w, r); !ok {
		return
	}
	businessID, ok = pathUUID(w, r, "businessId")
	return
}
