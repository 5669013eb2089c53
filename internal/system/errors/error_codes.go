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

package errors

const errorPrefix = "NMS-"

var (
	// Server error codes

	DB_CLIENT_INIT = ErrorMessage{
		Code:    errorPrefix + "15001",
		Message: "Unable to initialize database client.",
	}

	EXECUTE_QUERY = ErrorMessage{
		Code:    errorPrefix + "15002",
		Message: "Error while executing database query.",
	}

	FETCH_MATCHING_RULES = ErrorMessage{
		Code:    errorPrefix + "15003",
		Message: "Error while fetching matching rule(s).",
	}

	FETCH_CLIENTS = ErrorMessage{
		Code:    errorPrefix + "15004",
		Message: "Error while fetching tenant clients.",
	}

	SIMILARITY_BACKEND = ErrorMessage{
		Code:    errorPrefix + "15005",
		Message: "Error while computing semantic similarity.",
	}

	EMBEDDING_REQUEST = ErrorMessage{
		Code:    errorPrefix + "15006",
		Message: "Error while requesting text embedding.",
	}

	STORE_SUGGESTION = ErrorMessage{
		Code:    errorPrefix + "15007",
		Message: "Error while storing rule suggestion.",
	}

	PUBLISH_NOTIFICATION = ErrorMessage{
		Code:    errorPrefix + "15008",
		Message: "Error while publishing match notification.",
	}

	UNMARSHAL_JSON = ErrorMessage{
		Code:    errorPrefix + "15009",
		Message: "Error while un-marshalling JSON.",
	}

	PARSING_ERROR = ErrorMessage{
		Code:    errorPrefix + "15010",
		Message: "Parsing token failed.",
	}

	// Client error codes
	BAD_REQUEST = ErrorMessage{
		Code:    errorPrefix + "11001",
		Message: "Invalid body format.",
	}

	UN_AUTHORIZED = ErrorMessage{
		Code:        errorPrefix + "11002",
		Message:     "Unauthorized",
		Description: "Authorization failure. Authorization information was invalid or missing from your request.",
	}

	FORBIDDEN = ErrorMessage{
		Code:        errorPrefix + "11003",
		Message:     "Forbidden",
		Description: "You do not have permission to access this resource.",
	}

	MATCHING_RULE_NOT_FOUND = ErrorMessage{
		Code:        errorPrefix + "11004",
		Message:     "Matching rule not found.",
		Description: "No matching rule exists for the provided rule_id.",
	}

	MATCHING_RULE_INACTIVE = ErrorMessage{
		Code:        errorPrefix + "11005",
		Message:     "Matching rule is not active.",
		Description: "The matching rule exists but is disabled and cannot be evaluated.",
	}

	CLIENT_NOT_FOUND = ErrorMessage{
		Code:        errorPrefix + "11006",
		Message:     "Client not found.",
		Description: "No client exists in this tenant for the provided client_id.",
	}

	MISSING_PATH_PARAM = ErrorMessage{
		Code:    errorPrefix + "11007",
		Message: "Missing path parameter.",
	}
)
