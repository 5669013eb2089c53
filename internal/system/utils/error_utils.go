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
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/pkg/errors"
)

const unknownFieldPrefix = "json: unknown field "

// HandleDecodeError turns a request body decoding error into a message for the caller.
func HandleDecodeError(err error, resourceName string) string {
	if err == nil {
		return ""
	}

	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	var sizeErr *http.MaxBytesError
	switch {
	case errors.Is(err, io.EOF):
		return fmt.Sprintf("Request body for %s is empty.", resourceName)
	case errors.As(err, &sizeErr):
		return fmt.Sprintf("Request body for %s exceeds %d bytes.", resourceName, sizeErr.Limit)
	case strings.HasPrefix(err.Error(), unknownFieldPrefix):
		field := strings.TrimPrefix(err.Error(), unknownFieldPrefix)
		return fmt.Sprintf("Unknown field %s in %s request body.", field, resourceName)
	case errors.As(err, &syntaxErr), errors.Is(err, io.ErrUnexpectedEOF):
		return fmt.Sprintf("Malformed JSON in %s request body.", resourceName)
	case errors.As(err, &typeErr) && typeErr.Field != "":
		return fmt.Sprintf("Invalid type for field '%s' in %s request body.", typeErr.Field, resourceName)
	case errors.As(err, &typeErr):
		return fmt.Sprintf("Invalid type in %s request body.", resourceName)
	default:
		return fmt.Sprintf("Invalid JSON payload for %s.", resourceName)
	}
}
