// Package config loads httpmsg configuration from YAML.
//
// ${VAR} and ${VAR:-default} references in the file are replaced with
// environment values before parsing, and HTTPMSG_* variables override the
// parsed values:
//
//	cfg, err := config.LoadConfig("httpmsg.yaml")
//	if err != nil {
//	    return err
//	}
//	req := message.NewRequest(cfg.MessageOptions()...)
//
// A Watcher reloads the file on change and passes each valid
// configuration to a callback.
package config
