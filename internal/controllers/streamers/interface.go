package streamers

import "github.com/flavioribeiro/isdbcc/internal/entities"

type Streamer interface {
	Stream(sp *entities.StreamParameters)
	Match(req *entities.RequestParams) bool
}
