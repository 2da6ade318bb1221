// Copyright (C) 2019-2025, Lux Industries Inc All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/holiman/uint256"
	"github.com/luxfi/geth/common/hexutil"
	"github.com/spf13/cobra"

	"github.com/luxfi/tokenbridge/address"
	"github.com/luxfi/tokenbridge/payload"
)

func newDeriveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "derive",
		Short: "Derive the addresses of a route",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			route, err := routeFromFlags(cmd)
			if err != nil {
				return err
			}

			deriver := address.NewDeriver(cfg.GetProgramID())
			controller, _, err := deriver.Controller()
			if err != nil {
				return err
			}
			mint, _, err := deriver.WrappedMint(route)
			if err != nil {
				return err
			}
			vault, _, err := deriver.Vault(route)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "controller: %s\n", controller)
			fmt.Fprintf(out, "wrapped mint: %s\n", mint)
			fmt.Fprintf(out, "vault: %s\n", vault)

			offrampStr, _ := cmd.Flags().GetString("offramp")
			if offrampStr == "" {
				return nil
			}
			offramp, err := solana.PublicKeyFromBase58(offrampStr)
			if err != nil {
				return fmt.Errorf("invalid offramp: %w", err)
			}
			authority, _, err := address.ExternalExecutionConfig(offramp, cfg.GetProgramID())
			if err != nil {
				return err
			}
			allowed, _, err := address.AllowedOfframp(cfg.GetRouter(), route.ChainSelector, offramp)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "offramp authority: %s\n", authority)
			fmt.Fprintf(out, "allowed offramp: %s\n", allowed)
			return nil
		},
	}
	addRouteFlags(cmd)
	cmd.Flags().String("offramp", "", "Offramp program ID (base58)")
	return cmd
}

func newEncodeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "encode",
		Short: "Encode bridge message data",
	}

	wrapCmd := &cobra.Command{
		Use:   "wrap",
		Short: "Encode a wrap message",
		RunE: func(cmd *cobra.Command, _ []string) error {
			asset, recipient, amount, err := actionFromFlags(cmd)
			if err != nil {
				return err
			}
			name, _ := cmd.Flags().GetString("name")
			symbol, _ := cmd.Flags().GetString("symbol")
			return printMessage(cmd, &payload.WrapPayload{
				Name:            name,
				Symbol:          symbol,
				UnderlyingAsset: asset,
				Recipient:       recipient,
				Amount:          amount,
			})
		},
	}
	addActionFlags(wrapCmd)
	wrapCmd.Flags().String("name", "", "Asset name")
	wrapCmd.Flags().String("symbol", "", "Asset symbol")

	unwrapCmd := &cobra.Command{
		Use:   "unwrap",
		Short: "Encode an unwrap message",
		RunE: func(cmd *cobra.Command, _ []string) error {
			asset, recipient, amount, err := actionFromFlags(cmd)
			if err != nil {
				return err
			}
			return printMessage(cmd, &payload.UnwrapPayload{
				UnderlyingAsset: asset,
				Recipient:       recipient,
				Amount:          amount,
			})
		},
	}
	addActionFlags(unwrapCmd)

	cmd.AddCommand(wrapCmd, unwrapCmd)
	return cmd
}

func newDecodeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "decode",
		Short: "Decode bridge message data",
		RunE: func(cmd *cobra.Command, _ []string) error {
			dataHex, _ := cmd.Flags().GetString("data")
			data, err := hexutil.Decode(dataHex)
			if err != nil {
				return fmt.Errorf("invalid data: %w", err)
			}
			action, err := payload.Parse(data)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "selector: %s\n", action.Selector())
			switch p := action.(type) {
			case *payload.WrapPayload:
				fmt.Fprintf(out, "name: %s\n", p.Name)
				fmt.Fprintf(out, "symbol: %s\n", p.Symbol)
				fmt.Fprintf(out, "underlying asset: %s\n", hexutil.Encode(p.UnderlyingAsset))
				fmt.Fprintf(out, "recipient: %s\n", hexutil.Encode(p.Recipient))
				fmt.Fprintf(out, "amount: %s\n", p.Amount.Dec())
			case *payload.UnwrapPayload:
				fmt.Fprintf(out, "underlying asset: %s\n", hexutil.Encode(p.UnderlyingAsset))
				fmt.Fprintf(out, "recipient: %s\n", hexutil.Encode(p.Recipient))
				fmt.Fprintf(out, "amount: %s\n", p.Amount.Dec())
			}
			return nil
		},
	}
	cmd.Flags().StringP("data", "d", "", "Message data (0x-prefixed hex)")
	_ = cmd.MarkFlagRequired("data")
	return cmd
}

func printMessage(cmd *cobra.Command, action payload.Action) error {
	data, err := payload.Message(action)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), hexutil.Encode(data))
	return nil
}

func addRouteFlags(cmd *cobra.Command) {
	cmd.Flags().Uint64("chain-selector", 0, "Counterpart chain selector")
	cmd.Flags().String("remote-bridge", "", "Bridge address on the counterpart chain (0x-prefixed hex)")
	cmd.Flags().String("asset", "", "Underlying asset (0x-prefixed hex)")
	_ = cmd.MarkFlagRequired("chain-selector")
	_ = cmd.MarkFlagRequired("remote-bridge")
	_ = cmd.MarkFlagRequired("asset")
}

func routeFromFlags(cmd *cobra.Command) (address.Route, error) {
	chainSelector, _ := cmd.Flags().GetUint64("chain-selector")
	remoteHex, _ := cmd.Flags().GetString("remote-bridge")
	assetHex, _ := cmd.Flags().GetString("asset")

	remote, err := hexutil.Decode(remoteHex)
	if err != nil {
		return address.Route{}, fmt.Errorf("invalid remote-bridge: %w", err)
	}
	asset, err := hexutil.Decode(assetHex)
	if err != nil {
		return address.Route{}, fmt.Errorf("invalid asset: %w", err)
	}
	route := address.Route{
		ChainSelector:   chainSelector,
		RemoteBridge:    remote,
		UnderlyingAsset: asset,
	}
	return route, route.Verify()
}

func addActionFlags(cmd *cobra.Command) {
	cmd.Flags().String("asset", "", "Underlying asset (0x-prefixed hex)")
	cmd.Flags().String("recipient", "", "Recipient (0x-prefixed hex)")
	cmd.Flags().String("amount", "0", "Amount in base units")
	_ = cmd.MarkFlagRequired("asset")
	_ = cmd.MarkFlagRequired("recipient")
}

func actionFromFlags(cmd *cobra.Command) ([]byte, []byte, *uint256.Int, error) {
	assetHex, _ := cmd.Flags().GetString("asset")
	recipientHex, _ := cmd.Flags().GetString("recipient")
	amountStr, _ := cmd.Flags().GetString("amount")

	asset, err := hexutil.Decode(assetHex)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("invalid asset: %w", err)
	}
	recipient, err := hexutil.Decode(recipientHex)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("invalid recipient: %w", err)
	}
	amount, err := uint256.FromDecimal(amountStr)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("invalid amount: %w", err)
	}
	return asset, recipient, amount, nil
}
