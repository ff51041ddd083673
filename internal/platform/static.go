package platform

import (
	"context"

	"github.com/micro-nova/deskprofile/internal/models"
)

// StaticAudio is used where no audio helper exists: it reports the
// synthetic devices and applies nothing.
type StaticAudio struct{}

func (StaticAudio) AudioDevices(context.Context) ([]models.AudioDevice, error) {
	return models.SyntheticAudioDevices(), nil
}

func (StaticAudio) ApplyAudio(context.Context, models.AudioSettings) ([]string, error) {
	return nil, nil
}

var _ AudioController = StaticAudio{}
