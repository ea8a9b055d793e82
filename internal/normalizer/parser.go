// Package normalizer reconciles bounding boxes returned by an external
// vision recognizer into the canonical normalized Region representation.
package normalizer

import (
	"encoding/json"
	"errors"
	"regexp"
	"strings"
)

// ErrUnparsable is returned when every recovery strategy has been exhausted
// without yielding a single box. Callers should treat it as a hard, retryable
// failure rather than an empty result.
var ErrUnparsable = errors.New("normalizer: no boxes recovered from recognizer output")

// RawBox holds the four numeric values of one recognizer box in their
// transmitted positional order, before any axis or scale interpretation.
type RawBox [4]float64

// ParseBoxes extracts raw boxes from the recognizer's response text. The
// recovery strategies run in a fixed order, stopping at the first that
// yields boxes: direct JSON parse, fenced code-block extraction, bare
// array/object extraction, then regex recovery of individual 4-number
// arrays.
func ParseBoxes(raw string) ([]RawBox, error) {
	attempts := []func(string) []RawBox{
		parseDirect,
		parseFenced,
		parseBare,
		parseNumberArrays,
	}
	for _, attempt := range attempts {
		if boxes := attempt(raw); len(boxes) > 0 {
			return boxes, nil
		}
	}
	return nil, ErrUnparsable
}

func parseDirect(raw string) []RawBox {
	var v interface{}
	if err := json.Unmarshal([]byte(strings.TrimSpace(raw)), &v); err != nil {
		return nil
	}
	var boxes []RawBox
	collectBoxes(v, &boxes)
	return boxes
}

var fencedRe = regexp.MustCompile("(?s)```[a-zA-Z]*\\s*(.*?)```")

// parseFenced retries the direct parse on the contents of markdown code
// fences, which chat-style recognizers like to wrap their JSON in.
func parseFenced(raw string) []RawBox {
	for _, m := range fencedRe.FindAllStringSubmatch(raw, -1) {
		if boxes := parseDirect(m[1]); len(boxes) > 0 {
			return boxes
		}
	}
	return nil
}

// parseBare cuts from the first opening bracket to the last matching closing
// bracket and retries the direct parse, recovering JSON embedded in prose.
func parseBare(raw string) []RawBox {
	for _, pair := range [][2]string{{"[", "]"}, {"{", "}"}} {
		start := strings.Index(raw, pair[0])
		end := strings.LastIndex(raw, pair[1])
		if start < 0 || end <= start {
			continue
		}
		if boxes := parseDirect(raw[start : end+1]); len(boxes) > 0 {
			return boxes
		}
	}
	return nil
}

var numberArrayRe = regexp.MustCompile(`\[\s*(-?\d+(?:\.\d+)?)\s*,\s*(-?\d+(?:\.\d+)?)\s*,\s*(-?\d+(?:\.\d+)?)\s*,\s*(-?\d+(?:\.\d+)?)\s*\]`)

// parseNumberArrays is the last resort: pull every standalone [a,b,c,d]
// quadruple out of the text regardless of surrounding structure.
func parseNumberArrays(raw string) []RawBox {
	var boxes []RawBox
	for _, m := range numberArrayRe.FindAllStringSubmatch(raw, -1) {
		var b RawBox
		ok := true
		for i := 0; i < 4; i++ {
			var f float64
			if err := json.Unmarshal([]byte(m[i+1]), &f); err != nil {
				ok = false
				break
			}
			b[i] = f
		}
		if ok {
			boxes = append(boxes, b)
		}
	}
	return boxes
}

// containerKeys are object keys probed, in order, for nested box payloads.
var containerKeys = []string{"box_2d", "box", "bbox", "boxes", "regions", "panels", "detections", "objects"}

// collectBoxes walks a decoded JSON value and appends every box it can
// interpret, preserving input order. A box is either a 4-number array or an
// object naming its corners.
func collectBoxes(v interface{}, out *[]RawBox) {
	switch val := v.(type) {
	case []interface{}:
		if b, ok := asNumberQuad(val); ok {
			*out = append(*out, b)
			return
		}
		for _, item := range val {
			collectBoxes(item, out)
		}
	case map[string]interface{}:
		if b, ok := asCornerObject(val); ok {
			*out = append(*out, b)
			return
		}
		for _, key := range containerKeys {
			if nested, exists := val[key]; exists {
				collectBoxes(nested, out)
			}
		}
	}
}

func asNumberQuad(arr []interface{}) (RawBox, bool) {
	if len(arr) != 4 {
		return RawBox{}, false
	}
	var b RawBox
	for i, item := range arr {
		f, ok := item.(float64)
		if !ok {
			return RawBox{}, false
		}
		b[i] = f
	}
	return b, true
}

// asCornerObject maps named-corner objects onto the default positional order
// [ymin, xmin, ymax, xmax]. Both min/max naming and 1/2 corner naming are
// accepted.
func asCornerObject(obj map[string]interface{}) (RawBox, bool) {
	get := func(keys ...string) (float64, bool) {
		for _, k := range keys {
			if f, ok := obj[k].(float64); ok {
				return f, true
			}
		}
		return 0, false
	}

	ymin, ok0 := get("ymin", "y_min", "y1")
	xmin, ok1 := get("xmin", "x_min", "x1")
	ymax, ok2 := get("ymax", "y_max", "y2")
	xmax, ok3 := get("xmax", "x_max", "x2")
	if ok0 && ok1 && ok2 && ok3 {
		return RawBox{ymin, xmin, ymax, xmax}, true
	}
	return RawBox{}, false
}
