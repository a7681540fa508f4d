// 指示: miu200521358
package main

import (
	"errors"
	"fmt"

	"github.com/miu200521358/mu_bonetools/pkg/adapter/mpresenter/messages"
	"github.com/miu200521358/mu_bonetools/pkg/domain/mmath"
	"github.com/spf13/cobra"
)

// editFlags は編集系コマンド共通のフラグを保持する。
type editFlags struct {
	objectName string
	outputPath string
}

// bind は共通フラグを登録する。
func (f *editFlags) bind(cmd *cobra.Command, withOutput bool) {
	cmd.Flags().StringVar(&f.objectName, "object", "", messages.FlagObject)
	if withOutput {
		cmd.Flags().StringVarP(&f.outputPath, "out", "o", "", messages.FlagOut)
	}
}

// newDumpCommand はワールド空間のボーン情報を表示するコマンドを生成する。
func newDumpCommand(a *app) *cobra.Command {
	flags := &editFlags{}
	cmd := &cobra.Command{
		Use:   "dump <rig>",
		Short: messages.HelpDump,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.openSession(args[0], flags.objectName)
			if err != nil {
				return err
			}
			for _, name := range s.object.Bones().Names() {
				result, found, err := s.usecase.GetWorldHeadTail(s.object, name)
				if err != nil {
					return err
				}
				if !found {
					continue
				}
				fmt.Fprintf(a.out, messages.LogDumpBone+"\n", name, result.Head, result.Tail, result.XAxis)
			}
			return nil
		},
	}
	flags.bind(cmd, false)
	return cmd
}

// newShiftCommand は全ボーンを変換するコマンドを生成する。
func newShiftCommand(a *app) *cobra.Command {
	flags := &editFlags{}
	cmd := &cobra.Command{
		Use:   "shift <rig>",
		Short: messages.HelpShift,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			translate, _, err := vec3Flag(cmd, "translate")
			if err != nil {
				return err
			}
			rotate, _, err := vec3Flag(cmd, "rotate")
			if err != nil {
				return err
			}
			s, err := a.openSession(args[0], flags.objectName)
			if err != nil {
				return err
			}
			matrix := mmath.NewMat4FromLocRotScale(
				translate,
				mmath.NewQuaternionFromDegrees(rotate.X, rotate.Y, rotate.Z),
				mmath.ONE_VEC3,
			)
			if err := s.usecase.ShiftBones(s.object, matrix); err != nil {
				return err
			}
			return s.save(flags.outputPath)
		},
	}
	flags.bind(cmd, true)
	cmd.Flags().Float64Slice("translate", nil, messages.FlagTranslate)
	cmd.Flags().Float64Slice("rotate", nil, messages.FlagRotate)
	return cmd
}

// newAlignCommand はボーンのX軸を合わせるコマンドを生成する。
func newAlignCommand(a *app) *cobra.Command {
	flags := &editFlags{}
	var boneName string
	cmd := &cobra.Command{
		Use:   "align <rig>",
		Short: messages.HelpAlign,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if boneName == "" {
				return errors.New(messages.MessageBoneRequired)
			}
			xAxis, ok, err := vec3Flag(cmd, "x-axis")
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf(messages.MessageVectorInvalid, "x-axis")
			}
			s, err := a.openSession(args[0], flags.objectName)
			if err != nil {
				return err
			}
			current, found, err := s.usecase.GetWorldHeadTail(s.object, boneName)
			if err != nil {
				return err
			}
			if !found {
				return fmt.Errorf(messages.MessageBoneNotFound, boneName)
			}
			if _, err := s.usecase.SetWorldHeadTailXAxis(s.object, boneName, current.Head, current.Tail, xAxis); err != nil {
				return err
			}
			return s.save(flags.outputPath)
		},
	}
	flags.bind(cmd, true)
	cmd.Flags().StringVar(&boneName, "bone", "", messages.FlagBone)
	cmd.Flags().Float64Slice("x-axis", nil, messages.FlagXAxis)
	return cmd
}

// newRemoveCommand はボーンを削除するコマンドを生成する。
func newRemoveCommand(a *app) *cobra.Command {
	flags := &editFlags{}
	var prefix string
	var boneNames []string
	cmd := &cobra.Command{
		Use:   "remove <rig>",
		Short: messages.HelpRemove,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if (prefix == "") == (len(boneNames) == 0) {
				return errors.New(messages.MessageRemoveTargetRequired)
			}
			s, err := a.openSession(args[0], flags.objectName)
			if err != nil {
				return err
			}
			var count int
			if prefix != "" {
				count, err = s.usecase.RemoveBonesStartWith(s.object, prefix)
			} else {
				count, err = s.usecase.RemoveBones(s.object, boneNames)
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, messages.LogRemoved+"\n", count)
			return s.save(flags.outputPath)
		},
	}
	flags.bind(cmd, true)
	cmd.Flags().StringVar(&prefix, "prefix", "", messages.FlagPrefix)
	cmd.Flags().StringSliceVar(&boneNames, "bone", nil, messages.FlagBones)
	return cmd
}

// newParentCommand はボーンの親を設定するコマンドを生成する。
func newParentCommand(a *app) *cobra.Command {
	flags := &editFlags{}
	var boneName string
	var parentName string
	var connect bool
	cmd := &cobra.Command{
		Use:   "parent <rig>",
		Short: messages.HelpParent,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if boneName == "" {
				return errors.New(messages.MessageBoneRequired)
			}
			s, err := a.openSession(args[0], flags.objectName)
			if err != nil {
				return err
			}
			found, err := s.usecase.SetBoneParenting(s.object, boneName, parentName, connect)
			if err != nil {
				return err
			}
			if !found {
				return fmt.Errorf(messages.MessageBoneNotFound, boneName)
			}
			return s.save(flags.outputPath)
		},
	}
	flags.bind(cmd, true)
	cmd.Flags().StringVar(&boneName, "bone", "", messages.FlagBone)
	cmd.Flags().StringVar(&parentName, "parent", "", messages.FlagParent)
	cmd.Flags().BoolVar(&connect, "connect", false, messages.FlagConnect)
	return cmd
}

// newCreateCommand はボーンを作成するコマンドを生成する。
func newCreateCommand(a *app) *cobra.Command {
	flags := &editFlags{}
	var boneName string
	cmd := &cobra.Command{
		Use:   "create <rig>",
		Short: messages.HelpCreate,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if boneName == "" {
				return errors.New(messages.MessageBoneRequired)
			}
			head, hasHead, err := vec3Flag(cmd, "head")
			if err != nil {
				return err
			}
			tail, hasTail, err := vec3Flag(cmd, "tail")
			if err != nil {
				return err
			}
			s, err := a.openSession(args[0], flags.objectName)
			if err != nil {
				return err
			}
			result, err := s.usecase.CreateOrGetBone(s.object, boneName)
			if err != nil {
				return err
			}
			if result.Created {
				fmt.Fprintf(a.out, messages.LogCreated+"\n", result.Name())
			} else {
				fmt.Fprintf(a.out, messages.LogExists+"\n", result.Name())
			}

			if hasHead || hasTail {
				currentHead, currentTail := mmath.ZERO_VEC3, mmath.UNIT_Z_VEC3
				if result.Bone != nil {
					currentHead, currentTail = result.Bone.Head, result.Bone.Tail
				} else if result.EditBone != nil {
					currentHead, currentTail = result.EditBone.Head, result.EditBone.Tail
				}
				if !hasHead {
					head = currentHead
				}
				if !hasTail {
					tail = currentTail
				}
				if _, err := s.usecase.SetLocalHeadTail(s.object, result.Name(), head, tail); err != nil {
					return err
				}
			}
			return s.save(flags.outputPath)
		},
	}
	flags.bind(cmd, true)
	cmd.Flags().StringVar(&boneName, "bone", "", messages.FlagBone)
	cmd.Flags().Float64Slice("head", nil, messages.FlagHead)
	cmd.Flags().Float64Slice("tail", nil, messages.FlagTail)
	return cmd
}

// newLayerCommand はボーンのレイヤー所属を切り替えるコマンドを生成する。
func newLayerCommand(a *app) *cobra.Command {
	flags := &editFlags{}
	var boneName string
	var index int
	var off bool
	cmd := &cobra.Command{
		Use:   "layer <rig>",
		Short: messages.HelpLayer,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if boneName == "" {
				return errors.New(messages.MessageBoneRequired)
			}
			s, err := a.openSession(args[0], flags.objectName)
			if err != nil {
				return err
			}
			found, err := s.usecase.SetBoneLayer(s.object, boneName, index, !off)
			if err != nil {
				return err
			}
			if !found {
				return fmt.Errorf(messages.MessageBoneNotFound, boneName)
			}
			fmt.Fprintf(a.out, messages.LogLayer+"\n", boneName, index, s.usecase.IsBoneInLayer(s.object, boneName, index))
			return s.save(flags.outputPath)
		},
	}
	flags.bind(cmd, true)
	cmd.Flags().StringVar(&boneName, "bone", "", messages.FlagBone)
	cmd.Flags().IntVar(&index, "layer", 0, messages.FlagLayer)
	cmd.Flags().BoolVar(&off, "off", false, messages.FlagLayerOff)
	return cmd
}

// vec3Flag は x,y,z 形式のフラグをVec3として取得する。未指定ならゼロベクトルと false を返す。
func vec3Flag(cmd *cobra.Command, name string) (mmath.Vec3, bool, error) {
	if !cmd.Flags().Changed(name) {
		return mmath.ZERO_VEC3, false, nil
	}
	values, err := cmd.Flags().GetFloat64Slice(name)
	if err != nil {
		return mmath.ZERO_VEC3, false, err
	}
	v, err := mmath.NewVec3FromSlice(values)
	if err != nil {
		return mmath.ZERO_VEC3, false, fmt.Errorf(messages.MessageVectorInvalid, name)
	}
	return v, true, nil
}
