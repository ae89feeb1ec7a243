package domain

const (
	// Token metadata constants
	SONG_TOKEN_DESCRIPTION = "Song NFT"
	JSON_DATA_URI_PREFIX   = "data:application/json;base64,"
	SVG_DATA_URI_PREFIX    = "data:image/svg+xml;base64,"

	// Blockchain constants
	ETHEREUM_ZERO_ADDRESS = "0x0000000000000000000000000000000000000000"

	// DEFAULT_FACTORY_ADDRESS is the deployer address handles are derived from when none is configured
	DEFAULT_FACTORY_ADDRESS = "0x00000000000000000000000000000000000BA2D0"
)
