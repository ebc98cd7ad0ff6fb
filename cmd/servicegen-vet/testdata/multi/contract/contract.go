package contract

type Codec interface {
	Encode(v any) ([]byte, error)
}
