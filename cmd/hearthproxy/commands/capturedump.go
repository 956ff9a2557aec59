package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/hearthy-oss/hearthproxy/capture"
	"github.com/hearthy-oss/hearthproxy/frame"
	"github.com/hearthy-oss/hearthproxy/messages"
	"github.com/hearthy-oss/hearthproxy/render"
)

var dumpFormat string

var captureDumpCmd = &cobra.Command{
	Use:   "capture-dump <file>",
	Short: "Decode and print the Aurora packets recorded in a capture file",
	Args:  cobra.ExactArgs(1),
	RunE:  runCaptureDump,
}

func init() {
	captureDumpCmd.Flags().StringVar(&dumpFormat, "format", "text", "output format: text or json")
	rootCmd.AddCommand(captureDumpCmd)
}

func runCaptureDump(cmd *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	r, err := capture.NewReader(f)
	if err != nil {
		return err
	}

	format := render.FormatText
	if dumpFormat == "json" {
		format = render.FormatJSON
	}
	renderer := render.GetRenderer(format)
	out := cmd.OutOrStdout()
	errOut := cmd.ErrOrStderr()

	splitters := make(map[string]*frame.AuroraSplitter)

	for {
		ev, err := r.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}

		switch ev.Type {
		case capture.EventNewConnection:
			nc := ev.NewConn
			fmt.Fprintf(out, "# stream %d: %s:%d -> %s:%d\n",
				nc.StreamID, capture.FormatIPv4(nc.SourceIP), nc.SourcePort,
				capture.FormatIPv4(nc.DestIP), nc.DestPort)

		case capture.EventData:
			d := ev.Data
			key := streamKey(d.StreamID, d.Who)
			splitter, ok := splitters[key]
			if !ok {
				splitter = frame.NewAuroraSplitter(frame.DefaultAuroraCapacity)
				splitters[key] = splitter
			}
			if err := splitter.Feed(d.Payload); err != nil {
				fmt.Fprintf(errOut, "stream %d: %v\n", d.StreamID, err)
				delete(splitters, key)
				continue
			}
			for {
				segment, ok := splitter.PullSegment()
				if !ok {
					break
				}
				decoded, err := messages.DecodePacket(messages.PacketType(segment.Type), segment.Body)
				if err != nil {
					fmt.Fprintf(errOut, "stream %d: %v\n", d.StreamID, err)
					continue
				}
				if err := renderer.Render(out, decoded); err != nil {
					return err
				}
			}

		case capture.EventClose:
			delete(splitters, streamKey(ev.CloseEv.StreamID, 0))
			delete(splitters, streamKey(ev.CloseEv.StreamID, 1))
		}
	}
	return nil
}

func streamKey(streamID uint32, who uint8) string {
	return fmt.Sprintf("%d:%d", streamID, who)
}
