package constants

const (
	MAX_SONG_OWNERS      = 100
	MAX_BAND_NAME_LENGTH = 256
	MAX_SONG_NAME_LENGTH = 256
	PNG_CONTENT_TYPE     = "image/png"
)
