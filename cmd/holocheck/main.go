// Command holocheck exercises the holostor facade end to end: encode a
// random data set, corrupt a fault mask's worth of blocks, decode, and
// verify the result matches the original. It is the minimal home for the
// "self-test pretty-printer" spec.md lists as an out-of-scope external
// collaborator of the coding core.
package main

import (
	"crypto/rand"
	"fmt"
	"log"
	"os"

	"github.com/urfave/cli"

	"github.com/MyronZimmerman/holostor/bitslice"
	"github.com/MyronZimmerman/holostor/holostor"
)

func main() {
	app := cli.NewApp()
	app.Name = "holocheck"
	app.Usage = "exercise the holostor erasure-coding engine"
	app.Flags = []cli.Flag{
		cli.IntFlag{Name: "n", Value: 4, Usage: "number of data blocks"},
		cli.IntFlag{Name: "k", Value: 2, Usage: "number of ECC blocks"},
		cli.IntFlag{Name: "blocksize", Value: 4096, Usage: "block size in bytes"},
		cli.Uint64Flag{Name: "fault-mask", Value: 0, Usage: "bitmask of blocks to zap before decode"},
	}
	app.Action = runSelfTest

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func runSelfTest(c *cli.Context) error {
	n := c.Int("n")
	k := c.Int("k")
	blockSize := c.Int("blocksize")
	faultMask := uint32(c.Uint64("fault-mask"))

	h, err := holostor.CreateSession(blockSize, n, k)
	if err != nil {
		return fmt.Errorf("create session: %w", err)
	}
	defer holostor.CloseSession(h)

	log.Printf("holocheck: N=%d K=%d BlockSize=%d backend=%s", n, k, blockSize, bitslice.CurrentBackend())

	blocks := make([][]byte, n+k)
	for i := 0; i < n+k; i++ {
		blocks[i] = make([]byte, blockSize)
	}
	original := make([][]byte, n)
	for i := 0; i < n; i++ {
		if _, err := rand.Read(blocks[i]); err != nil {
			return err
		}
		original[i] = append([]byte(nil), blocks[i]...)
	}

	if err := holostor.Encode(h, blocks); err != nil {
		return fmt.Errorf("encode: %w", err)
	}

	if faultMask != 0 {
		for i := 0; i < n+k; i++ {
			if faultMask&(1<<uint(i)) != 0 {
				for j := range blocks[i] {
					blocks[i][j] = 0
				}
			}
		}
		if err := holostor.Decode(h, blocks, faultMask); err != nil {
			return fmt.Errorf("decode: %w", err)
		}
	}

	for i := 0; i < n; i++ {
		for j := range original[i] {
			if blocks[i][j] != original[i][j] {
				return fmt.Errorf("data block %d mismatch at byte %d", i, j)
			}
		}
	}
	log.Println("holocheck: round trip OK")
	return nil
}
