package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/gs-imak/book-swipe-sub000/service"
)

// LoadOptions 从 YAML 文件加载编排层参数（打分系数、MMR lambda、
// 探索阈值等）。缺省字段保持零值，由 service 层回退默认——
// 配置文件只需要写想覆盖的项。
//
// 示例：
//
//	score:
//	  popularity_coef: 0.03
//	  quality_coef: 0.05
//	mmr_lambda: 0.7
//	low_similarity_max: 0.3
func LoadOptions(path string) (service.Options, error) {
	var opts service.Options

	data, err := os.ReadFile(path)
	if err != nil {
		return opts, fmt.Errorf("read file: %w", err)
	}
	if err := yaml.Unmarshal(data, &opts); err != nil {
		return opts, fmt.Errorf("parse yaml: %w", err)
	}
	return opts, nil
}
