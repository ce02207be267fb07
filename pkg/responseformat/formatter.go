package responseformat

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"

	"github.com/vmihailenco/msgpack/v5"
)

// Format is an output encoding.
type Format string

const (
	JSON    Format = "json"
	MsgPack Format = "msgpack"
)

// FromRequest picks the format requested via the format query parameter.
// JSON is the default.
func FromRequest(req *http.Request) Format {
	if req.URL.Query().Get("format") == string(MsgPack) {
		return MsgPack
	}
	return JSON
}

// Formatter handles encoding and writing responses in JSON or MessagePack format
type Formatter struct{}

// NewFormatter creates a new response formatter
func NewFormatter() *Formatter {
	return &Formatter{}
}

// WriteResponse writes data with a 200 status in the format the request asked for
func (f *Formatter) WriteResponse(w http.ResponseWriter, req *http.Request, data any) error {
	return f.WriteStatus(w, req, http.StatusOK, data)
}

// WriteStatus writes data with the given status code
func (f *Formatter) WriteStatus(w http.ResponseWriter, req *http.Request, status int, data any) error {
	// Always set CORS header
	w.Header().Set("Access-Control-Allow-Origin", "*")

	format := FromRequest(req)
	w.Header().Set("Content-Type", format.ContentType())

	// Encode before the header goes out so encoding failures still get a 500
	var buf bytes.Buffer
	if err := Encode(&buf, format, data); err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		Encode(w, format, ErrorBody{Error: "response encoding failed"})
		return err
	}

	w.WriteHeader(status)
	_, err := w.Write(buf.Bytes())
	return err
}

// ErrorBody is the payload of every error response.
type ErrorBody struct {
	Error string `json:"error"`
}

// WriteError writes msg as an ErrorBody
func (f *Formatter) WriteError(w http.ResponseWriter, req *http.Request, status int, msg string) error {
	return f.WriteStatus(w, req, status, ErrorBody{Error: msg})
}

// ContentType returns the MIME type for the format.
func (ft Format) ContentType() string {
	if ft == MsgPack {
		return "application/x-msgpack"
	}
	return "application/json"
}

// Encode writes data to w. MessagePack output uses the json struct tags so
// both encodings share field names.
func Encode(w io.Writer, format Format, data any) error {
	if format == MsgPack {
		encoder := msgpack.NewEncoder(w)
		encoder.SetCustomStructTag("json")
		return encoder.Encode(data)
	}
	return json.NewEncoder(w).Encode(data)
}
