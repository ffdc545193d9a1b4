package codec

import (
	"encoding/json"
	"fmt"

	"google.golang.org/grpc/encoding"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"
)

// Name は content-subtype として使用するコーデック名です (application/grpc+json)。
const Name = "json"

func init() {
	encoding.RegisterCodec(JSON{})
}

// JSON は gRPC メッセージを JSON で符号化するコーデックです。
// proto.Message は protojson で、それ以外の Go 構造体は encoding/json で扱います。
type JSON struct{}

// Marshal は v を JSON へ変換します。
func (JSON) Marshal(v any) ([]byte, error) {
	if m, ok := v.(proto.Message); ok {
		return protojson.Marshal(m)
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("codec: marshal %T: %w", v, err)
	}
	return b, nil
}

// Unmarshal は data を v へ復元します。
func (JSON) Unmarshal(data []byte, v any) error {
	if m, ok := v.(proto.Message); ok {
		return protojson.UnmarshalOptions{DiscardUnknown: true}.Unmarshal(data, m)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("codec: unmarshal %T: %w", v, err)
	}
	return nil
}

// Name はコーデック名を返します。
func (JSON) Name() string {
	return Name
}
