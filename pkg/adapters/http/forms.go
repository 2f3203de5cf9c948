package http

import (
	"fmt"
	"net/http"

	"github.com/aretw0/polezero/pkg/domain"
	"github.com/mitchellh/mapstructure"
)

// editForm is the union of the fields posted by the editor page.
type editForm struct {
	Kind      string  `mapstructure:"kind"`
	Index     *int    `mapstructure:"index"`
	Magnitude *string `mapstructure:"magnitude"`
	Phase     *string `mapstructure:"phase"`
	Return    string  `mapstructure:"return"`
}

// decodeForm flattens the posted form (first value per key) and decodes it
// with weak typing so that "index" arrives as an int.
func decodeForm(r *http.Request) (editForm, error) {
	var form editForm
	if err := r.ParseForm(); err != nil {
		return form, fmt.Errorf("%w: %v", errBadRequest, err)
	}

	flat := make(map[string]any, len(r.PostForm))
	for key, values := range r.PostForm {
		if len(values) > 0 {
			flat[key] = values[0]
		}
	}

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           &form,
	})
	if err != nil {
		return form, err
	}
	if err := dec.Decode(flat); err != nil {
		return form, fmt.Errorf("%w: %v", errBadRequest, err)
	}
	return form, nil
}

func (f editForm) kind() (domain.Kind, error) {
	return domain.ParseKind(f.Kind)
}

func (f editForm) index() (int, error) {
	if f.Index == nil {
		return 0, fmt.Errorf("%w: index is required", errBadRequest)
	}
	return *f.Index, nil
}
