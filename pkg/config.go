package tpc

type Configuration struct {
	MaxEvents            int      `json:"max_events"`
	Skip                 int      `json:"skip"`
	Verbosity            int      `json:"verbosity"`
	FileIn               string   `json:"file_in"`
	FileOut              string   `json:"file_out"`
	FirstTimeBin         int      `json:"first_time_bin"`
	LastTimeBin          int      `json:"last_time_bin"`
	ADCMin               float32  `json:"adc_min"`
	ADCMax               float32  `json:"adc_max"`
	NoiseThreshold       float32  `json:"noise_threshold"`
	PedestalAndNoiseFile string   `json:"pedestal_and_noise_file"`
	CheckDuplicates      bool     `json:"check_duplicates"`
	RemoveDuplicates     bool     `json:"remove_duplicates"`
	MaskedPads           [][3]int `json:"masked_pads"`
	NoDB                 bool     `json:"no_db"`
	RunNumber            int      `json:"run_number"`
	Host                 string   `json:"host"`
	User                 string   `json:"user"`
	Passwd               string   `json:"pass"`
	DBName               string   `json:"dbname"`
	NumWorkers           int      `json:"num_workers"`
	WriteData            bool     `json:"write_data"`
	InMemoryOnly         bool     `json:"in_memory_only"`
	CompressionLevel     int      `json:"compression_level"`
}

var configuration Configuration

func GetConfiguration() Configuration {
	return configuration
}

func SetConfiguration(config Configuration) {
	configuration = config
}

// FilterParams holds the zero-suppression settings of one filtering
// session. They are fixed at construction and passed explicitly to the
// components that consult them.
type FilterParams struct {
	FirstTimeBin         int
	LastTimeBin          int
	ADCMin               float32
	ADCMax               float32
	NoiseThreshold       float32
	PedestalAndNoiseFile string
}

func (c Configuration) FilterParams() FilterParams {
	return FilterParams{
		FirstTimeBin:         c.FirstTimeBin,
		LastTimeBin:          c.LastTimeBin,
		ADCMin:               c.ADCMin,
		ADCMax:               c.ADCMax,
		NoiseThreshold:       c.NoiseThreshold,
		PedestalAndNoiseFile: c.PedestalAndNoiseFile,
	}
}
