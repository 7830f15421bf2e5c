package planner

import (
	"io/fs"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/ghost2804/finhub/data/presets"
)

// Tip is a single savings suggestion.
type Tip struct {
	Title      string `yaml:"title" json:"title"`
	Tip        string `yaml:"tip" json:"tip"`
	Difficulty string `yaml:"difficulty" json:"difficulty"`
	Impact     string `yaml:"impact" json:"impact"`
}

var (
	tipsOnce sync.Once
	tipsAll  map[string][]Tip
)

func loadTips() map[string][]Tip {
	tipsOnce.Do(func() {
		b, err := fs.ReadFile(presets.FS(), "tips.yaml")
		if err != nil {
			logger().Infow("read tips fail", "err", err)
			tipsAll = map[string][]Tip{}
			return
		}
		if err = yaml.Unmarshal(b, &tipsAll); err != nil {
			logger().Infow("parse tips fail", "err", err)
			tipsAll = map[string][]Tip{}
		}
	})
	return tipsAll
}

// SavingsTips returns the tips for a profile. Unknown profiles get the
// beginner set.
func SavingsTips(profile string) []Tip {
	all := loadTips()
	if tips, ok := all[profile]; ok {
		return tips
	}
	return all["beginner"]
}
