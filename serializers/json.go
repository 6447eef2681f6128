package serializers

import (
	"encoding/json"
)

type JSONSerializer struct {
	Pretty bool
}

func (s *JSONSerializer) Serialize(i interface{}) ([]byte, error) {
	if s.Pretty {
		return json.MarshalIndent(i, "", "  ")
	}
	return json.Marshal(i)
}

func (s *JSONSerializer) Deserialize(b []byte, i interface{}) error {
	return json.Unmarshal(b, i)
}
