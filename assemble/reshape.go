package assemble

import (
	"github.com/tsawler/layoutkit/model"
)

// Reshape converts table rows into the output data form selected by mode.
// Keyed modes keep the first position of a key and the last row written
// under it.
func Reshape(rows []model.Row, mode model.DataMode, key, value string) model.TableData {
	switch mode {
	case model.DataModeMapFirstCol:
		data := model.TableData{Mode: mode}
		for _, r := range rows {
			if r.Len() == 0 {
				continue
			}
			data.Set(model.Entry{Key: r.Values[0].String(), Row: r.Without(r.Keys[0])})
		}
		return data

	case model.DataModeMapFirstToLast:
		// lossy: only the last column survives
		data := model.TableData{Mode: mode}
		for _, r := range rows {
			if r.Len() < 2 {
				continue
			}
			data.Set(model.Entry{Key: r.Values[0].String(), Value: r.Values[r.Len()-1], Scalar: true})
		}
		return data

	case model.DataModeMapKey:
		if key == "" {
			return model.TableData{Mode: model.DataModeArray, Rows: rows}
		}
		data := model.TableData{Mode: mode}
		for _, r := range rows {
			k, ok := r.Get(key)
			if !ok {
				continue
			}
			if value == "" {
				data.Set(model.Entry{Key: k.String(), Row: r.Without(key)})
				continue
			}
			if v, ok := r.Get(value); ok {
				data.Set(model.Entry{Key: k.String(), Value: v, Scalar: true})
			}
		}
		return data
	}
	return model.TableData{Mode: model.DataModeArray, Rows: rows}
}
