package encoding

import (
	"bytes"
	"fmt"
	"io"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/tilt-dev/simpleserve/pkg/api"
)

func newObject(tm api.TypeMeta) (interface{}, error) {
	switch tm {
	case api.TypeMeta{Kind: "Server", APIVersion: "simpleserve.dev/v1alpha1"}:
		return &api.Server{}, nil
	}
	return nil, fmt.Errorf("unrecognized type: %+v", tm)
}

// ParseStream decodes a stream of YAML documents into typed config objects,
// dispatching on each document's kind and apiVersion. Fields that don't
// exist on the target type are errors, so typos don't silently turn into
// default values.
func ParseStream(r io.Reader) ([]interface{}, error) {
	result := []interface{}{}
	decoder := yaml.NewDecoder(r)
	for {
		node := yaml.Node{}
		err := decoder.Decode(&node)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if isEmptyDocument(&node) {
			continue
		}

		tm := api.TypeMeta{}
		err = node.Decode(&tm)
		if err != nil {
			return nil, err
		}

		obj, err := newObject(tm)
		if err != nil {
			return nil, err
		}

		// yaml.Node has no strict-field decode of its own, so round-trip
		// the document through a strict decoder.
		doc, err := yaml.Marshal(&node)
		if err != nil {
			return nil, err
		}
		strict := yaml.NewDecoder(bytes.NewReader(doc))
		strict.KnownFields(true)
		err = strict.Decode(obj)
		if err != nil {
			return nil, errors.Wrapf(err, "decoding %v", tm)
		}

		result = append(result, obj)
	}
	return result, nil
}

// Empty documents in a stream (e.g. a trailing "---") decode as a
// null node rather than a decode error.
func isEmptyDocument(node *yaml.Node) bool {
	if node.IsZero() {
		return true
	}
	if node.Kind == yaml.DocumentNode && len(node.Content) == 1 {
		node = node.Content[0]
	}
	return node.Kind == yaml.ScalarNode && node.Tag == "!!null"
}
