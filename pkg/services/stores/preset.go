package stores

import (
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ghost2804/finhub/data/presets"
	"github.com/ghost2804/finhub/pkg/models/chat"
	"github.com/ghost2804/finhub/pkg/settings"
)

// LoadPreset reads the advisor preset from the configured file, falling back
// to the embedded default when none is set.
func LoadPreset() (doc chat.Preset, err error) {
	if len(settings.Current.PresetFile) > 0 {
		var yf *os.File
		yf, err = os.Open(settings.Current.PresetFile)
		if err != nil {
			logger().Infow("load preset fail", "file", settings.Current.PresetFile, "err", err)
			return
		}
		defer yf.Close()
		err = yaml.NewDecoder(yf).Decode(&doc)
		if err != nil {
			logger().Infow("decode preset fail", "err", err)
		}
		return
	}

	b, err := fs.ReadFile(presets.FS(), "advisor.yaml")
	if err != nil {
		logger().Infow("read embedded preset fail", "err", err)
		return
	}
	err = yaml.Unmarshal(b, &doc)
	return
}
