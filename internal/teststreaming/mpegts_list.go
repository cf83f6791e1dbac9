package teststreaming

import (
	"time"

	"github.com/asticode/go-astits"
	"github.com/flavioribeiro/isdbcc/internal/entities"
)

type TestStream interface {
	Generate(dir string) (string, error)
	ExpectedStreams() []entities.Stream
	ExpectedCues() []entities.Cue
}

func componentTag(tag uint8) []*astits.Descriptor {
	return []*astits.Descriptor{
		{
			Tag:              astits.DescriptorTagStreamIdentifier,
			Length:           1,
			StreamIdentifier: &astits.DescriptorStreamIdentifier{ComponentTag: tag},
		},
	}
}

var MPEG_TS_H264_ISDB TestStream = &testStream{
	file: "h264_isdb.ts",
	es: []astits.PMTElementaryStream{
		{ElementaryPID: 256, StreamType: astits.StreamTypeH264Video},
		{ElementaryPID: 258, StreamType: streamTypePrivateData, ElementaryStreamDescriptors: componentTag(0x30)},
	},
	language:     "jpn",
	managementAt: time.Second,
	captions: []Caption{
		{At: 2 * time.Second, Text: "hello"},
		{At: 3 * time.Second, Text: "world"},
	},
	expectedStreams: []entities.Stream{
		{Codec: entities.H264, Type: entities.VideoType, Id: 256, Index: 0},
		{Codec: entities.ISDBCaption, Type: entities.CaptionType, Id: 258, Index: 1, ComponentTag: 0x30},
	},
	expectedCues: []entities.Cue{
		{Type: entities.MessageTypeCaptions, Source: "ISDB", StartTime: 1000, EndTime: 2000, Language: "jpn", Text: "hello"},
		{Type: entities.MessageTypeCaptions, Source: "ISDB", StartTime: 2000, EndTime: 3000, Language: "jpn", Text: "world"},
	},
}

var MPEG_TS_AAC TestStream = &testStream{
	file: "aac.ts",
	es: []astits.PMTElementaryStream{
		{ElementaryPID: 257, StreamType: astits.StreamTypeAACAudio},
	},
	managementAt: time.Second,
	expectedStreams: []entities.Stream{
		{Codec: entities.AAC, Type: entities.AudioType, Id: 257, Index: 0},
	},
}
