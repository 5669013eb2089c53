/*
 * Copyright (c) 2025, WSO2 LLC. (http://www.wso2.com).
 *
 * WSO2 LLC. licenses this file to you under the Apache License,
 * Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing,
 * software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
 * KIND, either express or implied.  See the License for the
 * specific language governing permissions and limitations
 * under the License.
 */

package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/studiohub/normative-matching-service/internal/system/constants"
	ctxutil "github.com/studiohub/normative-matching-service/internal/system/context"
	customerrors "github.com/studiohub/normative-matching-service/internal/system/errors"
	"github.com/studiohub/normative-matching-service/internal/system/log"
)

const maxRequestBodyBytes = 1 << 20

// RespondJSON writes body as JSON with the given status.
func RespondJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body != nil {
		_ = json.NewEncoder(w).Encode(body)
	}
}

// HandleError sends an HTTP error response based on the provided error. Client errors keep their status;
// anything else is logged and reported as an internal error.
func HandleError(w http.ResponseWriter, r *http.Request, err error) {
	traceID := ctxutil.GetTraceID(r.Context())

	var clientError *customerrors.ClientError
	if errors.As(err, &clientError) {
		msg := clientError.ErrorMessage
		msg.TraceID = traceID
		RespondJSON(w, clientError.StatusCode, msg)
		return
	}

	logger := log.GetLogger().WithContext(r.Context())
	var serverError *customerrors.ServerError
	if errors.As(err, &serverError) {
		logger.Error(serverError.Description, log.Error(err))
		RespondJSON(w, http.StatusInternalServerError, customerrors.ErrorMessage{
			Code:    serverError.Code,
			Message: serverError.Message,
			TraceID: traceID,
		})
		return
	}

	logger.Error("Unhandled error while serving request", log.Error(err))
	RespondJSON(w, http.StatusInternalServerError, customerrors.ErrorMessage{
		Message: "Internal server error",
		TraceID: traceID,
	})
}

// DecodeJSONBody decodes an optional JSON body into dst. An empty body leaves dst untouched.
func DecodeJSONBody(r *http.Request, dst interface{}, resourceName string) error {
	if r.Body == nil || r.ContentLength == 0 {
		return nil
	}
	decoder := json.NewDecoder(http.MaxBytesReader(nil, r.Body, maxRequestBodyBytes))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		return customerrors.NewClientError(customerrors.ErrorMessage{
			Code:        customerrors.BAD_REQUEST.Code,
			Message:     customerrors.BAD_REQUEST.Message,
			Description: HandleDecodeError(err, resourceName),
		}, http.StatusBadRequest)
	}
	return nil
}

// ExtractTenantId returns the tenant resolved by MountTenantDispatcher.
func ExtractTenantId(r *http.Request) string {
	return ctxutil.GetTenant(r.Context())
}

// RequirePathParam returns the named path value or a client error when it is blank.
func RequirePathParam(r *http.Request, name string) (string, error) {
	value := strings.TrimSpace(r.PathValue(name))
	if value == "" {
		return "", customerrors.NewClientError(customerrors.ErrorMessage{
			Code:        customerrors.MISSING_PATH_PARAM.Code,
			Message:     customerrors.MISSING_PATH_PARAM.Message,
			Description: fmt.Sprintf("Path parameter %s is required", name),
		}, http.StatusBadRequest)
	}
	return value, nil
}

// RewriteToDefaultTenant redirects `/api/v1/...` to `/t/{defaultTenant}/api/v1/...`.
func RewriteToDefaultTenant(apiBasePath string, mux *http.ServeMux, defaultTenant string) {
	mux.HandleFunc(apiBasePath+"/", func(w http.ResponseWriter, r *http.Request) {
		newPath := "/t/" + defaultTenant + r.URL.Path
		http.Redirect(w, r, newPath, http.StatusTemporaryRedirect)
	})
}

// MountTenantDispatcher serves `/t/{tenant}/api/v1/...`: the tenant and a trace id are put on the request
// context and the remaining path, without the API base path, is handed to handlerFunc.
func MountTenantDispatcher(mux *http.ServeMux, apiBasePath string, handlerFunc http.HandlerFunc) {
	mux.HandleFunc("/t/", func(w http.ResponseWriter, r *http.Request) {
		path := strings.TrimSuffix(r.URL.Path, "/")

		// Split: /t/{tenant}/api/v1/...
		parts := strings.SplitN(strings.TrimPrefix(path, "/t/"), "/", 2)
		if len(parts) != 2 || parts[0] == "" {
			http.Error(w, "Invalid tenant path format", http.StatusBadRequest)
			return
		}

		tenantID := parts[0]
		remainingPath := "/" + parts[1]
		if !strings.HasPrefix(remainingPath, apiBasePath) {
			http.Error(w, "Path must start with "+apiBasePath, http.StatusNotFound)
			return
		}

		traceID := r.Header.Get(constants.TraceIDHeader)
		if traceID == "" {
			traceID = ctxutil.GenerateTraceID()
		}
		w.Header().Set(constants.TraceIDHeader, traceID)

		ctx := ctxutil.WithTenant(r.Context(), tenantID)
		ctx = ctxutil.WithTraceID(ctx, traceID)
		r = r.WithContext(ctx)
		r.URL.Path = strings.TrimPrefix(remainingPath, apiBasePath)

		handlerFunc(w, r)
	})
}
