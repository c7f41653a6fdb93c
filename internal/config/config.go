// Package config loads the forum CLI configuration from .env, a YAML file and
// FORUM_* environment variables, and validates it into typed values.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gagliardetto/solana-go"
	solanarpc "github.com/gagliardetto/solana-go/rpc"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/SolCharms/DeEdIT-SDK/pkg/forum"
)

const (
	// DefaultConfigName is looked up in the working directory and ~/.config/forum-cli.
	DefaultConfigName = "forum-cli"
	EnvPrefix         = "FORUM"
)

// Config is the validated CLI configuration.
type Config struct {
	Network  Network
	Forum    forum.Fees
	Question Question
}

type Network struct {
	Cluster        forum.Network
	RPCURL         string
	Keypair        string
	ProgramID      solana.PublicKey
	Commitment     solanarpc.CommitmentType
	ConfirmTimeout time.Duration
}

// Question holds the parameters ask-question posts. Forum is zero when unset.
type Question struct {
	Forum  solana.PublicKey
	Params forum.AskQuestionParams
}

type rawConfig struct {
	Network struct {
		Cluster        string `mapstructure:"cluster"`
		RPCURL         string `mapstructure:"rpc_url"`
		Keypair        string `mapstructure:"keypair"`
		ProgramID      string `mapstructure:"program_id"`
		Commitment     string `mapstructure:"commitment"`
		ConfirmTimeout string `mapstructure:"confirm_timeout"`
	} `mapstructure:"network"`
	Forum struct {
		ProfileFee    uint64 `mapstructure:"profile_fee"`
		QuestionFee   uint64 `mapstructure:"question_fee"`
		BountyMinimum uint64 `mapstructure:"bounty_minimum"`
	} `mapstructure:"forum"`
	Question struct {
		Forum   string `mapstructure:"forum"`
		Title   string `mapstructure:"title"`
		Content string `mapstructure:"content"`
		Tag     string `mapstructure:"tag"`
		Bounty  uint64 `mapstructure:"bounty"`
		Seed    string `mapstructure:"seed"`
	} `mapstructure:"question"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("network.cluster", string(forum.NetworkDevnet))
	v.SetDefault("network.rpc_url", "")
	v.SetDefault("network.keypair", "~/.config/solana/id.json")
	v.SetDefault("network.program_id", "")
	v.SetDefault("network.commitment", string(solanarpc.CommitmentConfirmed))
	v.SetDefault("network.confirm_timeout", "91s")

	v.SetDefault("forum.profile_fee", forum.DefaultForumProfileFee)
	v.SetDefault("forum.question_fee", forum.DefaultForumQuestionFee)
	v.SetDefault("forum.bounty_minimum", forum.DefaultForumBountyMinimum)

	v.SetDefault("question.forum", "")
	v.SetDefault("question.title", "")
	v.SetDefault("question.content", "")
	v.SetDefault("question.tag", forum.TagDevelopment.String())
	v.SetDefault("question.bounty", forum.DefaultForumBountyMinimum)
	v.SetDefault("question.seed", "")
}

// Load reads the configuration. An empty path searches for forum-cli.yaml and is not
// an error when none exists; an explicit path must exist.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(DefaultConfigName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", DefaultConfigName))
		}
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var raw rawConfig
	if err := v.Unmarshal(&raw); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	return raw.validate()
}

func (raw *rawConfig) validate() (*Config, error) {
	network, err := raw.network()
	if err != nil {
		return nil, err
	}
	question, err := raw.question()
	if err != nil {
		return nil, err
	}
	return &Config{
		Network: network,
		Forum: forum.Fees{
			ProfileFee:    raw.Forum.ProfileFee,
			QuestionFee:   raw.Forum.QuestionFee,
			BountyMinimum: raw.Forum.BountyMinimum,
		},
		Question: question,
	}, nil
}

func (raw *rawConfig) network() (Network, error) {
	n := raw.Network
	out := Network{Cluster: forum.Network(n.Cluster), RPCURL: n.RPCURL}

	// a cluster value may itself be an endpoint URL
	if strings.HasPrefix(n.Cluster, "http://") || strings.HasPrefix(n.Cluster, "https://") {
		out.Cluster, out.RPCURL = "", n.Cluster
	}
	if out.RPCURL == "" {
		url, ok := forum.ClusterURLs[out.Cluster]
		if !ok {
			return Network{}, fmt.Errorf("network.cluster: unknown cluster %q", n.Cluster)
		}
		out.RPCURL = url
	}

	keypair, err := expandHome(n.Keypair)
	if err != nil {
		return Network{}, fmt.Errorf("network.keypair: %w", err)
	}
	out.Keypair = keypair

	if n.ProgramID != "" {
		if out.ProgramID, err = solana.PublicKeyFromBase58(n.ProgramID); err != nil {
			return Network{}, fmt.Errorf("network.program_id: %w", err)
		}
	} else {
		out.ProgramID = forum.ProgramIDFor(out.Cluster)
	}

	switch c := solanarpc.CommitmentType(n.Commitment); c {
	case solanarpc.CommitmentProcessed, solanarpc.CommitmentConfirmed, solanarpc.CommitmentFinalized:
		out.Commitment = c
	default:
		return Network{}, fmt.Errorf("network.commitment: unsupported level %q", n.Commitment)
	}

	if out.ConfirmTimeout, err = time.ParseDuration(n.ConfirmTimeout); err != nil {
		return Network{}, fmt.Errorf("network.confirm_timeout: %w", err)
	}
	if out.ConfirmTimeout <= 0 {
		return Network{}, fmt.Errorf("network.confirm_timeout: must be positive, got %s", out.ConfirmTimeout)
	}
	return out, nil
}

func (raw *rawConfig) question() (Question, error) {
	q := raw.Question
	var out Question
	if q.Forum != "" {
		key, err := solana.PublicKeyFromBase58(q.Forum)
		if err != nil {
			return Question{}, fmt.Errorf("question.forum: %w", err)
		}
		out.Forum = key
	}
	tag, err := forum.ParseTag(q.Tag)
	if err != nil {
		return Question{}, fmt.Errorf("question.tag: %w", err)
	}
	out.Params = forum.AskQuestionParams{
		Title:        q.Title,
		Content:      q.Content,
		Tag:          tag,
		BountyAmount: q.Bounty,
	}
	if q.Seed != "" {
		seed, err := solana.PublicKeyFromBase58(q.Seed)
		if err != nil {
			return Question{}, fmt.Errorf("question.seed: %w", err)
		}
		out.Params.QuestionSeed = &seed
	}
	return out, nil
}

func expandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}
