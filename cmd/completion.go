package cmd

import (
	"github.com/etnz/gbce"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// Completion returns the shell completion of the gbce command line.
func Completion() *complete.Command {
	symbols := predict.Set(gbce.NewReferenceExchange().Symbols())
	window := predict.Set{"1m", "5m", "15m", "1h"}
	return &complete.Command{
		Flags: map[string]complete.Predictor{
			"stocks-file":  predict.Files("*.jsonl"),
			"journal-file": predict.Files("*.jsonl"),
			"raw":          predict.Nothing,
		},
		Sub: map[string]*complete.Command{
			"stocks": {
				Flags: map[string]complete.Predictor{"json": predict.Nothing},
			},
			"record": {
				Flags: map[string]complete.Predictor{
					"s": symbols,
					"q": predict.Something,
					"i": predict.Set{gbce.Buy.String(), gbce.Sell.String()},
					"p": predict.Something,
				},
			},
			"report": {
				Flags: map[string]complete.Predictor{"w": window, "json": predict.Nothing},
			},
			"index": {
				Flags: map[string]complete.Predictor{"w": window},
			},
		},
	}
}
