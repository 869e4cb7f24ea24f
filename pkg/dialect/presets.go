package dialect

import (
	"github.com/pkg/errors"
	"github.com/pseudomuto/colsweep/pkg/column"
	"github.com/pseudomuto/colsweep/pkg/errs"
)

// Preset names understood by Profile.Preset.
const (
	PresetCreatedAt = "created_at"
	PresetUpdatedAt = "updated_at"
	PresetVersion   = "version"
	PresetDeleted   = "deleted"
	PresetCommon    = "common"
)

// Presets returns the names accepted by Profile.Preset.
func Presets() []string {
	return []string{PresetCreatedAt, PresetUpdatedAt, PresetVersion, PresetDeleted, PresetCommon}
}

// Preset returns the column specs for a named preset, with types adjusted to
// this profile. PresetCommon expands to all of the others, in order.
func (p Profile) Preset(name string) ([]column.Spec, error) {
	if name == PresetCommon {
		var specs []column.Spec
		for _, n := range []string{PresetCreatedAt, PresetUpdatedAt, PresetVersion, PresetDeleted} {
			s, err := p.Preset(n)
			if err != nil {
				return nil, err
			}
			specs = append(specs, s...)
		}
		return specs, nil
	}

	var (
		spec column.Spec
		err  error
	)

	switch name {
	case PresetCreatedAt:
		spec, err = column.New(name, p.timestampType, column.NotNull(), column.WithDefault("CURRENT_TIMESTAMP"))
	case PresetUpdatedAt:
		typ := p.timestampType
		if p.tag == TagMySQL {
			typ += " ON UPDATE CURRENT_TIMESTAMP"
		}
		spec, err = column.New(name, typ, column.NotNull(), column.WithDefault("CURRENT_TIMESTAMP"))
	case PresetVersion:
		spec, err = column.New(name, p.integerType, column.NotNull(), column.WithDefault("0"))
	case PresetDeleted:
		def := "0"
		if column.Classify(p.booleanType) == column.Boolean {
			def = "false"
		}
		spec, err = column.New(name, p.booleanType, column.NotNull(), column.WithDefault(def))
	default:
		return nil, errs.Configuration("unknown preset %q", name)
	}

	if err != nil {
		return nil, errors.Wrapf(err, "preset %s", name)
	}

	return []column.Spec{spec}, nil
}

// BooleanType returns the type used for boolean-like columns.
func (p Profile) BooleanType() string { return p.booleanType }
