package commands

import (
	"fmt"
	"runtime"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/mem"

	"github.com/Zickles/tanzanite/internal/metrics"
)

var botStartTime = time.Now()

// handleBotInfo shows bot, host and case-tracking statistics.
func handleBotInfo(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	// Stats gathering can take a moment; defer the response.
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
	})
	if err != nil {
		return err
	}

	embed := buildBotInfoEmbed(s)

	_, err = s.InteractionResponseEdit(i.Interaction, &discordgo.WebhookEdit{
		Embeds: &[]*discordgo.MessageEmbed{embed},
	})
	return err
}

func buildBotInfoEmbed(s *discordgo.Session) *discordgo.MessageEmbed {
	fields := []*discordgo.MessageEmbedField{
		{
			Name: "🤖 Bot",
			Value: fmt.Sprintf("Uptime: %s\nGuilds: %d\nGateway latency: %s",
				botStartTime.Format("2006-01-02 15:04")+" ("+time.Since(botStartTime).Round(time.Second).String()+")",
				len(s.State.Guilds), s.HeartbeatLatency().Round(time.Millisecond)),
			Inline: false,
		},
	}

	if hostInfo, err := host.Info(); err == nil {
		fields = append(fields, &discordgo.MessageEmbedField{
			Name: "🖥️ Host",
			Value: fmt.Sprintf("%s (%s)\nUptime: %s",
				hostInfo.Platform, hostInfo.KernelArch,
				(time.Duration(hostInfo.Uptime) * time.Second).Round(time.Minute)),
			Inline: true,
		})
	}

	cpuValue := fmt.Sprintf("%d cores", runtime.NumCPU())
	if percents, err := cpu.Percent(0, false); err == nil && len(percents) > 0 {
		cpuValue = fmt.Sprintf("%d cores, %.1f%% used", runtime.NumCPU(), percents[0])
	}
	fields = append(fields, &discordgo.MessageEmbedField{
		Name:   "⚙️ CPU",
		Value:  cpuValue,
		Inline: true,
	})

	if vm, err := mem.VirtualMemory(); err == nil {
		fields = append(fields, &discordgo.MessageEmbedField{
			Name: "💾 Memory",
			Value: fmt.Sprintf("%.1f GiB / %.1f GiB (%.1f%%)",
				float64(vm.Used)/(1<<30), float64(vm.Total)/(1<<30), vm.UsedPercent),
			Inline: true,
		})
	}

	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)
	fields = append(fields, &discordgo.MessageEmbedField{
		Name: "🐹 Runtime",
		Value: fmt.Sprintf("%s, %d goroutines, %.1f MiB heap",
			runtime.Version(), runtime.NumGoroutine(), float64(memStats.HeapAlloc)/(1<<20)),
		Inline: true,
	})

	stats := metrics.Snapshot()
	fields = append(fields, &discordgo.MessageEmbedField{
		Name: "📋 Case tracking",
		Value: fmt.Sprintf("Cases created: %d\nManual matches: %d\nUnmatched windows: %d\nRejected windows: %d\nFailed log deliveries: %d",
			stats.CasesCreated, stats.WindowsResolved, stats.WindowsUnmatched,
			stats.WindowsRejected, stats.PublishFailures),
		Inline: false,
	})

	return &discordgo.MessageEmbed{
		Title:  "Tanzanite",
		Color:  0x5865F2,
		Fields: fields,
	}
}
