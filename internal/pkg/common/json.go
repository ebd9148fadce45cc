package common

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// ParseJSONBytes 解析 JSON，資料結尾不可有多餘內容
func ParseJSONBytes(data []byte, v interface{}) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	if dec.More() {
		return errors.New("unexpected extra JSON data")
	}
	return nil
}
