package impl

import _ "example.com/multi/contract"

//servicegen:service example.com/multi/contract.Codec
type JSON struct{}

func (JSON) Encode(v any) ([]byte, error) { return nil, nil }

//servicegen:service example.com/multi/contract.Codec
type Raw struct{}

func (*Raw) Encode(v any) []byte { return nil }
