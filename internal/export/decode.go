package export

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/phrazzld/priority-sorter/internal/domain"
	"gopkg.in/yaml.v3"
)

var errNotArray = errors.New("top level is not an array")

// Decode reads an array of task records from r. Only JSON and YAML can be
// decoded, and the top level must be an array: null, an empty document or a
// single object fail with ErrInvalidPayload, so only an explicit empty array
// yields no tasks. The returned tasks may carry uuid.Nil IDs or zero creation
// times where the input lacked usable values.
func Decode(r io.Reader, format Format) ([]*domain.Task, error) {
	var recs []Record

	switch format {
	case FormatJSON:
		if err := json.NewDecoder(r).Decode(&recs); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidPayload, err)
		}
		// encoding/json leaves the slice nil only for a literal null.
		if recs == nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidPayload, errNotArray)
		}
	case FormatYAML:
		if err := decodeYAMLSequence(r, &recs); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidPayload, err)
		}
	default:
		return nil, fmt.Errorf("%w: cannot import %q", ErrUnsupportedFormat, format)
	}

	tasks := make([]*domain.Task, 0, len(recs))
	for _, rec := range recs {
		tasks = append(tasks, rec.Task())
	}
	return tasks, nil
}

func decodeYAMLSequence(r io.Reader, recs *[]Record) error {
	var doc yaml.Node
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return errors.New("empty document")
		}
		return err
	}

	root := &doc
	if root.Kind == yaml.DocumentNode && len(root.Content) > 0 {
		root = root.Content[0]
	}
	if root.Kind != yaml.SequenceNode {
		return errNotArray
	}
	return root.Decode(recs)
}
