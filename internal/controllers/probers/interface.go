package probers

import "github.com/flavioribeiro/isdbcc/internal/entities"

type Prober interface {
	StreamInfo(req *entities.RequestParams) (*entities.StreamInfo, error)
	Match(req *entities.RequestParams) bool
}
