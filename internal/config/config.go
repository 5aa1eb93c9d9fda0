// Package config handles loading and saving the mdxgen build profile.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/quillon/mdxgen/internal/corpus"
	"github.com/quillon/mdxgen/internal/render"
)

// Profile holds the paths and archive metadata for one dictionary build.
type Profile struct {
	CSVPath     string `yaml:"csv_path"`    // source dataset
	DBPath      string `yaml:"db_path"`     // row store
	CorpusPath  string `yaml:"corpus_path"` // intermediate rendered corpus
	MDXPath     string `yaml:"mdx_path"`    // final archive
	Title       string `yaml:"title"`
	Description string `yaml:"description"` // HTML front matter for the archive
	CSS         string `yaml:"css"`         // stylesheet name linked by every entry
	BatchSize   int    `yaml:"batch_size"`  // corpus write batch
}

// Default returns the build profile matching the stock ECDICT conversion.
func Default() *Profile {
	return &Profile{
		CSVPath:    "stardict.csv",
		DBPath:     "stardict.db",
		CorpusPath: "stardict.txt",
		MDXPath:    "concise-enhanced.mdx",
		Title:      "英汉汉英字典",
		Description: "<font size=5 color=red>简明英汉汉英字典增强版<br>" +
			"(数据：http://github.com/skywind3000/ECDICT)<br>" +
			"1. 开源英汉字典：MIT / CC 双协议<br>" +
			"2. 标注牛津三千关键词：音标后 K字符<br>" +
			"3. 柯林斯星级词汇标注：音标后 1-5的数字<br>" +
			"4. 标注 COCA/BNC 的词频顺序<br>" +
			"5. 标注考试大纲信息：中高研四六托雅 等<br>" +
			"6. 增加汉英反查<br>" +
			"</font>",
		CSS:       render.DefaultCSS,
		BatchSize: corpus.DefaultBatchSize,
	}
}

// Load reads a build profile from a YAML file. Fields left empty in the
// file keep their defaults.
func Load(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading profile: %w", err)
	}
	p := Default()
	if err := yaml.Unmarshal(data, p); err != nil {
		return nil, fmt.Errorf("parsing profile %s: %w", path, err)
	}
	if p.BatchSize <= 0 {
		p.BatchSize = corpus.DefaultBatchSize
	}
	return p, nil
}

// Save writes the profile to a YAML file.
func Save(path string, p *Profile) error {
	out, err := yaml.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshaling profile: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating profile directory: %w", err)
		}
	}
	if err := os.WriteFile(path, out, 0644); err != nil {
		return fmt.Errorf("writing profile: %w", err)
	}
	return nil
}
