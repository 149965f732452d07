package httpx

import (
	"encoding/json"
	"io"
	"mime"
	"net/http"
)

const maxUploadSize = 10 << 20 // 10 MiB

// DecodeBody decodes the request body into dst. JSON bodies decode directly;
// multipart bodies decode the JSON in the "data" form field, so a single
// endpoint can take either plain JSON or form-data with attached files.
func DecodeBody(r *http.Request, dst interface{}) error {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err == nil && mediaType == "multipart/form-data" {
		if err := r.ParseMultipartForm(maxUploadSize); err != nil {
			return err
		}
		data := r.FormValue("data")
		if data == "" {
			return nil
		}
		return json.Unmarshal([]byte(data), dst)
	}
	return json.NewDecoder(r.Body).Decode(dst)
}

// FormFile reads an uploaded file into memory. ok is false when the request
// is not multipart or the field is absent; a malformed or oversized body is
// an error, not an absent file.
func FormFile(r *http.Request, field string) (data []byte, filename string, ok bool, err error) {
	if r.MultipartForm == nil {
		if err := r.ParseMultipartForm(maxUploadSize); err != nil {
			if err == http.ErrNotMultipart {
				return nil, "", false, nil
			}
			return nil, "", false, err
		}
	}
	file, header, err := r.FormFile(field)
	if err != nil {
		if err == http.ErrMissingFile {
			return nil, "", false, nil
		}
		return nil, "", false, err
	}
	defer file.Close()

	data, err = io.ReadAll(file)
	if err != nil {
		return nil, "", false, err
	}
	return data, header.Filename, true, nil
}
