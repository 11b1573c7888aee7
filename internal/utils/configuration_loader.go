package utils

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
)

const (
	configurationKeySeparatorConstant        = "."
	environmentKeySeparatorConstant          = "_"
	embeddedDocumentErrorTemplateConstant    = "failed to merge embedded configuration: %w"
	configurationFileErrorTemplateConstant   = "failed to read configuration: %w"
	configurationDecodeErrorTemplateConstant = "failed to parse configuration: %w"
)

// ConfigurationSources names the layers merged by ConfigurationLoader. Later layers win: defaults, embedded document, configuration file, environment.
type ConfigurationSources struct {
	FileName          string
	FileType          string
	EnvironmentPrefix string
	SearchDirectories []string
	EmbeddedDocument  []byte
}

// LoadedConfiguration reports which layers contributed to a load.
type LoadedConfiguration struct {
	ConfigFileUsed          string
	EmbeddedDocumentApplied bool
}

// ConfigurationLoader resolves layered configuration through Viper.
type ConfigurationLoader struct {
	sources ConfigurationSources
}

// NewConfigurationLoader copies sources so later caller mutations do not leak into loads.
func NewConfigurationLoader(sources ConfigurationSources) *ConfigurationLoader {
	sources.SearchDirectories = append([]string(nil), sources.SearchDirectories...)
	sources.EmbeddedDocument = append([]byte(nil), sources.EmbeddedDocument...)
	return &ConfigurationLoader{sources: sources}
}

// LoadConfiguration decodes the merged layers into target. An explicit file path replaces directory discovery and must exist.
func (loader *ConfigurationLoader) LoadConfiguration(explicitFilePath string, defaultValues map[string]any, target any) (LoadedConfiguration, error) {
	viperInstance := viper.New()
	viperInstance.SetConfigType(loader.sources.FileType)
	for configurationKey, defaultValue := range defaultValues {
		viperInstance.SetDefault(configurationKey, defaultValue)
	}

	var loaded LoadedConfiguration
	if len(loader.sources.EmbeddedDocument) > 0 {
		if mergeError := viperInstance.MergeConfig(bytes.NewReader(loader.sources.EmbeddedDocument)); mergeError != nil {
			return LoadedConfiguration{}, fmt.Errorf(embeddedDocumentErrorTemplateConstant, mergeError)
		}
		loaded.EmbeddedDocumentApplied = true
	}

	if fileError := loader.mergeConfigurationFile(viperInstance, strings.TrimSpace(explicitFilePath)); fileError != nil {
		return LoadedConfiguration{}, fileError
	}
	loaded.ConfigFileUsed = viperInstance.ConfigFileUsed()

	viperInstance.SetEnvPrefix(loader.sources.EnvironmentPrefix)
	viperInstance.SetEnvKeyReplacer(strings.NewReplacer(configurationKeySeparatorConstant, environmentKeySeparatorConstant))
	viperInstance.AutomaticEnv()

	if decodeError := viperInstance.Unmarshal(target, viper.DecodeHook(configurationDecodeHook())); decodeError != nil {
		return LoadedConfiguration{}, fmt.Errorf(configurationDecodeErrorTemplateConstant, decodeError)
	}
	return loaded, nil
}

func (loader *ConfigurationLoader) mergeConfigurationFile(viperInstance *viper.Viper, explicitFilePath string) error {
	if len(explicitFilePath) > 0 {
		viperInstance.SetConfigFile(explicitFilePath)
	} else {
		viperInstance.SetConfigName(loader.sources.FileName)
		for _, searchDirectory := range loader.sources.SearchDirectories {
			viperInstance.AddConfigPath(searchDirectory)
		}
	}

	mergeError := viperInstance.MergeInConfig()
	if mergeError == nil {
		return nil
	}

	var notFoundError viper.ConfigFileNotFoundError
	if len(explicitFilePath) == 0 && errors.As(mergeError, &notFoundError) {
		return nil
	}
	return fmt.Errorf(configurationFileErrorTemplateConstant, mergeError)
}

// configurationDecodeHook routes string values through encoding.TextUnmarshaler targets so typed settings validate at load time.
func configurationDecodeHook() mapstructure.DecodeHookFunc {
	return mapstructure.TextUnmarshallerHookFunc()
}
