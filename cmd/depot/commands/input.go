package commands

import (
	"bufio"
	"bytes"
	"encoding/json"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"go.trai.ch/depot/internal/core/domain"
	"go.trai.ch/depot/internal/core/ports"
	"go.trai.ch/zerr"
)

// fsys is the file system payloads and uploads are read from.
var fsys = afero.NewOsFs()

type payloadFlags struct {
	data string
	file string
}

func (p *payloadFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&p.data, "data", "d", "", "JSON payload")
	cmd.Flags().StringVarP(&p.file, "file", "f", "", "Read the JSON payload from a file, - for stdin")
	cmd.MarkFlagsMutuallyExclusive("data", "file")
	cmd.MarkFlagsOneRequired("data", "file")
}

func (p *payloadFlags) read(cmd *cobra.Command) ([]byte, error) {
	switch {
	case p.data != "":
		return []byte(p.data), nil
	case p.file == "-":
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, zerr.Wrap(domain.ErrInvalidInput, "failed to read stdin")
		}
		return data, nil
	default:
		data, err := afero.ReadFile(fsys, p.file)
		if err != nil {
			return nil, zerr.With(zerr.Wrap(domain.ErrInvalidInput, "failed to read payload"), "file", p.file)
		}
		return data, nil
	}
}

// decodeInto merges the JSON payload onto v. Fields absent from the payload
// keep their value. Unknown fields are rejected.
func decodeInto(data []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return zerr.With(zerr.Wrap(domain.ErrInvalidInput, "invalid JSON payload"), "cause", err.Error())
	}
	return nil
}

// openUpload opens path as a multipart file part. The caller closes it.
func openUpload(path string) (ports.Upload, io.Closer, error) {
	f, err := fsys.Open(path)
	if err != nil {
		return ports.Upload{}, nil, zerr.With(zerr.Wrap(domain.ErrInvalidInput, "failed to open file"), "file", path)
	}
	return ports.Upload{FileName: filepath.Base(path), Reader: f}, f, nil
}

// readLine reads one trimmed line, used for secrets typed at a prompt.
func readLine(r io.Reader) string {
	sc := bufio.NewScanner(r)
	if !sc.Scan() {
		return ""
	}
	return strings.TrimSpace(sc.Text())
}
