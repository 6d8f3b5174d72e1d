package beast

import (
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/aria-lang/phyloprep-go/internal/config"
	"github.com/aria-lang/phyloprep-go/internal/dates"
	"github.com/aria-lang/phyloprep-go/internal/msa"
)

// Configuration keys read or derived by Prepare.
const (
	KeyName               = "name"
	KeyTemplate           = "template"
	KeyOutputPath         = "outputpath"
	KeyAlignmentCDS       = "alignment_cds"
	KeyAlignmentIG        = "alignment_ig"
	KeyDateTrait          = "datetrait"
	KeyTipDatesPriors     = "tipdatesPriors"
	KeyTipDatesOperators  = "tipdatesOperators"
	KeyTipDatesLoggers    = "tipdatesLoggers"
	KeyTMRCAMean          = "tmrca_mean"
	KeySamplingDimension  = "samplingProportionDimension"
	KeySamplingSliceDim   = "samplingSliceDim"
	KeySamplingProportion = "samplingProportion"
	KeyOriginMin          = "origin_min"
	KeyOriginMax          = "origin_max"
	KeyOriginInit         = "origin_init"
)

// DefaultSamplingProportion is used when a config sets a sampling dimension
// without a proportion.
const DefaultSamplingProportion = 0.001

// Prepared is a run configuration with every derived value filled in.
type Prepared struct {
	Values config.Values
	// Tips of the coding alignment, which dates the tree.
	Tips []Tip
}

func readTips(path string) ([]Tip, error) {
	aln, err := msa.ReadFile(path)
	if err != nil {
		return nil, err
	}
	tips, err := Tips(aln)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if len(tips) == 0 {
		return nil, fmt.Errorf("%s: %w", path, &msa.EmptyAlignmentError{})
	}
	return tips, nil
}

// Prepare replaces alignment paths in v with rendered sequence blocks and
// derives the date trait, tip date priors and model parameters. v is
// modified in place.
func Prepare(v config.Values, log *zap.Logger) (*Prepared, error) {
	if log == nil {
		log = zap.NewNop()
	}

	cdsPath := v.String(KeyAlignmentCDS)
	if cdsPath == "" {
		return nil, fmt.Errorf("config key %q is not set", KeyAlignmentCDS)
	}
	cds, err := readTips(cdsPath)
	if err != nil {
		return nil, err
	}
	v.Set(KeyAlignmentCDS, SequenceBlock(cds, "cds"))

	if v.Has(KeyAlignmentIG) {
		ig, err := readTips(v.String(KeyAlignmentIG))
		if err != nil {
			return nil, err
		}
		if err := CompareTraits(ig, cds); err != nil {
			log.Warn("alignment date traits differ", zap.Error(err))
		}
		v.Set(KeyAlignmentIG, SequenceBlock(ig, "ig"))
	}

	oldest, newest := DateRange(cds)

	if v.Has(KeyDateTrait) {
		data, err := os.ReadFile(v.String(KeyDateTrait))
		if err != nil {
			return nil, fmt.Errorf("reading date trait: %w", err)
		}
		v.Set(KeyDateTrait, strings.ReplaceAll(string(data), "\n", ",\n"))
		v.Set(KeyTipDatesPriors, "")
		v.Set(KeyTipDatesOperators, "")
		v.Set(KeyTipDatesLoggers, "")
	} else {
		oldIDs, newIDs := Extremes(cds)
		log.Info("sample dates",
			zap.Strings("most_recent", newIDs),
			zap.Strings("oldest", oldIDs))
		for _, t := range Uncertain(cds) {
			log.Debug("estimating sampling date", zap.String("id", t.ID))
		}

		priors := TipDatePriors(cds, newest)
		v.Set(KeyDateTrait, DateTrait(cds))
		v.Set(KeyTipDatesPriors, priors.Distributions)
		v.Set(KeyTipDatesOperators, priors.Operators)
		v.Set(KeyTipDatesLoggers, priors.Loggers)
	}

	if v.Has(KeyTMRCAMean) {
		x, err := v.Float(KeyTMRCAMean)
		if err != nil {
			return nil, err
		}
		v.Set(KeyTMRCAMean, newest-x)
	}

	if v.Has(KeySamplingDimension) {
		if err := setSampling(v); err != nil {
			return nil, err
		}
	}

	if v.Has(KeyOriginMax) {
		v.Set(KeyOriginMin, newest-oldest)
		for _, key := range []string{KeyOriginMax, KeyOriginInit} {
			if !v.Has(key) {
				continue
			}
			d, err := dates.ParseTipDate(v.String(key))
			if err != nil {
				return nil, fmt.Errorf("config key %q: %w", key, err)
			}
			v.Set(key, newest-d.Date)
		}
	}

	return &Prepared{Values: v, Tips: cds}, nil
}

// setSampling derives the sampling proportion vector of a birth-death
// skyline model: zero before the first sample, then a constant proportion
// in every later slice.
func setSampling(v config.Values) error {
	dim, err := v.Int(KeySamplingDimension)
	if err != nil {
		return err
	}
	if dim < 1 {
		return fmt.Errorf("config key %q must be at least 1", KeySamplingDimension)
	}

	p := DefaultSamplingProportion
	if v.Has(KeySamplingProportion) {
		if p, err = v.Float(KeySamplingProportion); err != nil {
			return err
		}
	}

	v.Set(KeySamplingSliceDim, dim-1)
	v.Set(KeySamplingProportion, "0.0"+strings.Repeat(fmt.Sprintf(" %.5f", p), dim-1))
	return nil
}
