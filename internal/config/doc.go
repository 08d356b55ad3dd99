// Package config loads the optional configuration file of the
// webdemo-index tools.
//
// Without a configuration file every value equals the fixed paths of the
// original scripts, so running a binary with no flags and no file behaves
// exactly like them. A configuration file may be written as YAML
// (gopkg.in/yaml.v3) or as JSON with comments (github.com/tidwall/jsonc):
//
//	envs:
//	  dir: web_demo/base_envs_set
//	  output: web_demo/base_envs_set.json
//	policies:
//	  root: policy_models
//	  output: web_demo/policies.json
//	  name_file: name.txt
//	  seed_order: numeric
//	ignore: [".*"]
//	indent: ""
//
// Relative paths resolve against the directory holding the file.
package config
