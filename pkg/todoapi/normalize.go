package todoapi

// Normalize classifies raw into an APIResult.
//
// A 2xx status is a success carrying raw.JSON as Data. Any other status is a
// failure whose ErrorMsg is the body's "detail" string; a body without one
// yields *MalformedErrorBodyError instead of a result.
func Normalize(raw RawResponse, method Method) (APIResult, error) {
	if isSuccess(raw.Status) {
		return APIResult{Status: raw.Status, Method: method, Data: raw.JSON}, nil
	}

	obj, ok := raw.JSON.(map[string]any)
	if !ok {
		return APIResult{}, &MalformedErrorBodyError{Status: raw.Status, Method: method, Body: raw.Body}
	}
	detail, ok := obj["detail"].(string)
	if !ok {
		return APIResult{}, &MalformedErrorBodyError{Status: raw.Status, Method: method, Body: raw.Body}
	}

	return APIResult{Status: raw.Status, Method: method, ErrorMsg: detail}, nil
}
