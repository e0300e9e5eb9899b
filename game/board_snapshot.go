package game

import (
	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

type BoardSnapshot struct {
	Seed            int64  `yaml:"seed"`
	Difficulty      string `yaml:"difficulty,omitempty"`
	SerializedBoard string `yaml:"board"`
}

func (snapshot *BoardSnapshot) Serialize() (string, error) {
	out, err := yaml.Marshal(snapshot)
	if err != nil {
		return "", errors.Wrap(err, "cannot serialize snapshot")
	}
	return string(out), nil
}

func LoadSnapshot(in string) (*BoardSnapshot, error) {
	var snapshot BoardSnapshot
	if err := yaml.Unmarshal([]byte(in), &snapshot); err != nil {
		return nil, errors.Wrap(err, "cannot parse snapshot")
	}
	if snapshot.SerializedBoard == "" {
		return nil, errors.New("snapshot has no board")
	}
	return &snapshot, nil
}
