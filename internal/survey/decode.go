package survey

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
)

// Decode builds a Result from loosely typed input such as parsed JSON or
// YAML. Ratings may be given as strings and a single answer may stand in
// for a list.
func Decode(input map[string]interface{}) (Result, error) {
	var res Result

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		Result:           &res,
	})
	if err != nil {
		return Result{}, fmt.Errorf("create survey decoder: %w", err)
	}

	if err := decoder.Decode(input); err != nil {
		return Result{}, fmt.Errorf("decode survey: %w", err)
	}

	for subject, rating := range res.SubjectRatings {
		if rating < 0 {
			return Result{}, fmt.Errorf("decode survey: rating of %s is negative", subject)
		}
	}

	return res, nil
}
