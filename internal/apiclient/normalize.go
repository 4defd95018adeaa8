package apiclient

import (
	"bytes"
	"encoding/json"
	"log"
)

// DecodeList decodes a list response that may be a bare array or an
// object wrapping the array under one of the known keys ("data" is always
// tried last). Shapes outside the known set decode to an empty list with
// a logged warning; DecodeList never returns an error.
func DecodeList(data []byte, out any, keys ...string) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return
	}

	if trimmed[0] == '[' {
		if err := json.Unmarshal(trimmed, out); err != nil {
			log.Printf("list response: malformed array: %v", err)
		}
		return
	}

	var wrapper map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &wrapper); err != nil {
		log.Printf("list response: unexpected shape, using empty list: %v", err)
		return
	}

	for _, key := range append(keys, "data") {
		raw, ok := wrapper[key]
		if !ok {
			continue
		}
		if err := json.Unmarshal(raw, out); err != nil {
			log.Printf("list response: key %q is not an array, using empty list: %v", key, err)
		}
		return
	}

	log.Printf("list response: none of the known keys present, using empty list")
}
