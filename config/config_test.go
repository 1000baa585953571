package config_test

import (
	"flag"
	"testing"

	"github.com/grailbio/bio/config"
	"github.com/grailbio/testutil/assert"
)

func TestRegisterDefaults(t *testing.T) {
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	var c config.Config
	config.Register(fs, &c)
	assert.NoError(t, fs.Parse([]string{"-m", "motifs.meme", "-t", "1e-8"}))
	assert.EQ(t, c.MotifsPath, "motifs.meme")
	assert.EQ(t, c.PValue, 1e-8)
	assert.EQ(t, c.Pseudocount, 1)
	assert.EQ(t, c.NSites, 1000)
}

func TestValidateInputCombinations(t *testing.T) {
	c := config.Config{}
	assert.Error(t, c.Validate())

	c.SeqsPath = "seqs.fa"
	assert.NoError(t, c.Validate())

	c.MotifsPath = "x.meme"
	assert.NoError(t, c.Validate())

	c.Consensus = "ACGT"
	assert.Error(t, c.Validate())
}

func TestParseBackground(t *testing.T) {
	bkg, err := config.ParseBackground("0.1,0.4,0.4,0.1", nil)
	assert.NoError(t, err)
	assert.EQ(t, bkg[0], 0.1)
	assert.EQ(t, bkg[1], 0.4)

	_, err = config.ParseBackground("0.1,0.4,0.4", nil)
	assert.Error(t, err)
}
